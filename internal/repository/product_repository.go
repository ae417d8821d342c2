package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	InStock    *bool
	Sort       string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	// in_stockフラグを「quantity>0のバリアントが存在するか」で再計算する。
	// 冪等。変更後のフラグ値を返す。
	RefreshInStock(ctx context.Context, productID int64) (bool, error)

	// 全商品のin_stockを一括で再計算（ドリフト解消用の掃除）。
	// 更新された行数を返す。
	ReconcileInStock(ctx context.Context) (int64, error)
}
