package repository

import (
	"app/internal/domain/model"
	"context"
)

type ReturnListQuery struct {
	Status  *model.ReturnStatus
	OrderID *int64
	Page    int
	Limit   int
}

type ReturnRequestRepository interface {
	Create(ctx context.Context, r model.ReturnRequest) (model.ReturnRequest, error)
	FindByID(ctx context.Context, id int64) (model.ReturnRequest, error)

	// 承認処理の前に返品行自体をロックする。
	// processedフラグの読み→書きをトランザクション内で直列化するため。
	LockForUpdate(ctx context.Context, id int64) (model.ReturnRequest, error)

	List(ctx context.Context, q ReturnListQuery) ([]model.ReturnRequest, int64, error)
	Update(ctx context.Context, r model.ReturnRequest) error
}
