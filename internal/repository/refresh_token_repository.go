package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, rt *model.RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, at time.Time) error
	RevokeAllByUserID(ctx context.Context, userID int64, at time.Time) error
}
