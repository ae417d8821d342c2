package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderListQuery struct {
	Status        *model.OrderStatus
	PaymentMethod *model.PaymentMethod
	Page          int
	Limit         int
}

type OrderRepository interface {
	Create(ctx context.Context, o model.Order) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	ListAll(ctx context.Context, q OrderListQuery) ([]model.Order, int64, error)
	Update(ctx context.Context, o model.Order) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
