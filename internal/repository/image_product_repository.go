package repository

import (
	"app/internal/domain/model"
	"context"
)

type ImageProductRepository interface {
	List(ctx context.Context, variantID *int64) ([]model.ImageProduct, error)
	FindByID(ctx context.Context, id int64) (model.ImageProduct, error)
	Create(ctx context.Context, img model.ImageProduct) (model.ImageProduct, error)
	Update(ctx context.Context, img model.ImageProduct) error
	Delete(ctx context.Context, id int64) error
}
