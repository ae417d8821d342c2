package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error

	// 明細を空にする
	Clear(ctx context.Context, cartID int64) error
}

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, id int64) (model.CartItem, error)

	// 同一バリアントは数量加算のupsert
	Upsert(ctx context.Context, item model.CartItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
	Delete(ctx context.Context, id int64) error
}
