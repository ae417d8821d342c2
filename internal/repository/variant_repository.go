package repository

import (
	"app/internal/domain/model"
	"context"
)

// バリアント（SKU）の永続化の約束。
// Quantityの書き換えはLockForUpdate→UpdateQuantityの順で、
// 同一トランザクション内でのみ行う。
type VariantRepository interface {
	FindByID(ctx context.Context, id int64) (model.ProductVariant, error)

	// 商品配下のバリアントをid昇順で返す
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error)

	List(ctx context.Context, productID *int64) ([]model.ProductVariant, error)

	// SELECT ... FOR UPDATE。トランザクション終了まで同じ行の
	// 他のロック取得をブロックする。quantityを書く前の読みは必ずこれ。
	LockForUpdate(ctx context.Context, id int64) (model.ProductVariant, error)

	// LockForUpdateで取ったロックを保持したまま呼ぶこと。
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error

	Create(ctx context.Context, v model.ProductVariant) (model.ProductVariant, error)
	Update(ctx context.Context, v model.ProductVariant) error
	Delete(ctx context.Context, id int64) error
}
