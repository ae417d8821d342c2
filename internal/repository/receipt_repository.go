package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

type ReceiptListQuery struct {
	SupplierID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type ReceiptRepository interface {
	Create(ctx context.Context, r model.Receipt) (model.Receipt, error)
	FindByID(ctx context.Context, id int64) (model.Receipt, error)
	List(ctx context.Context, q ReceiptListQuery) ([]model.Receipt, int64, error)

	// 取り消し時刻を記録する。未取り消しの行だけ更新し、
	// 既に取り消し済みならErrNotFoundを返す（二重取り消しの防止）。
	MarkReverted(ctx context.Context, id int64, at time.Time) error
}

type ReceiptItemRepository interface {
	CreateBulk(ctx context.Context, receiptID int64, items []model.ReceiptItem) error
	ListByReceiptID(ctx context.Context, receiptID int64) ([]model.ReceiptItem, error)
}
