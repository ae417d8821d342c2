package repository

import (
	"app/internal/domain/model"
	"context"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
}

type ColorRepository interface {
	List(ctx context.Context) ([]model.Color, error)
	FindByID(ctx context.Context, id int64) (model.Color, error)
	Create(ctx context.Context, c model.Color) (model.Color, error)
	Update(ctx context.Context, c model.Color) error
	Delete(ctx context.Context, id int64) error
}

type SizeRepository interface {
	List(ctx context.Context) ([]model.Size, error)
	FindByID(ctx context.Context, id int64) (model.Size, error)
	Create(ctx context.Context, s model.Size) (model.Size, error)
	Update(ctx context.Context, s model.Size) error
	Delete(ctx context.Context, id int64) error
}

type SupplierRepository interface {
	List(ctx context.Context) ([]model.Supplier, error)
	FindByID(ctx context.Context, id int64) (model.Supplier, error)
	Create(ctx context.Context, s model.Supplier) (model.Supplier, error)
	Update(ctx context.Context, s model.Supplier) error
	Delete(ctx context.Context, id int64) error
}
