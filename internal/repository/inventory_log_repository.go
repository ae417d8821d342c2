package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

// 監査ログの絞り込み
type InventoryLogFilter struct {
	VariantID *int64
	Type      *model.InventoryLogType
	RelatedID *int64
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	Limit     int
}

// 在庫監査ログの永続化の約束。追記と参照のみ（更新・削除はしない）。
type InventoryLogRepository interface {
	Create(ctx context.Context, log model.InventoryLog) (model.InventoryLog, error)

	List(ctx context.Context, f InventoryLogFilter) ([]model.InventoryLog, int64, error)
	ListByVariantID(ctx context.Context, variantID int64) ([]model.InventoryLog, error)
	ListByTypeAndRelated(ctx context.Context, t model.InventoryLogType, relatedID int64) ([]model.InventoryLog, error)

	// since以降のdelta合計（棚卸しの突き合わせ用）
	SumDeltaByVariant(ctx context.Context, variantID int64, since time.Time) (int64, error)
}
