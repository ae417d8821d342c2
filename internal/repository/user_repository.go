package repository

import (
	"app/internal/domain/model"
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, u *model.User) error
	IncrementTokenVersion(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}
