package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryLogGormRepository struct {
	db *gorm.DB
}

func NewInventoryLogGormRepository(db *gorm.DB) *InventoryLogGormRepository {
	return &InventoryLogGormRepository{db: db}
}

// 追記のみ。UpdateやDeleteは提供しない。
func (r *InventoryLogGormRepository) Create(ctx context.Context, log model.InventoryLog) (model.InventoryLog, error) {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return model.InventoryLog{}, err
	}
	return log, nil
}

func (r *InventoryLogGormRepository) List(ctx context.Context, f repo.InventoryLogFilter) ([]model.InventoryLog, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.InventoryLog{})

	if f.VariantID != nil {
		tx = tx.Where("variant_id = ?", *f.VariantID)
	}
	if f.Type != nil {
		tx = tx.Where("type = ?", *f.Type)
	}
	if f.RelatedID != nil {
		tx = tx.Where("related_id = ?", *f.RelatedID)
	}
	if f.DateFrom != nil {
		tx = tx.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		tx = tx.Where("created_at <= ?", *f.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 25
	}

	var logs []model.InventoryLog
	err := tx.Order("created_at desc").Order("id desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// バリアント1件の全履歴。挿入順＝在庫値の遷移順。
func (r *InventoryLogGormRepository) ListByVariantID(ctx context.Context, variantID int64) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("id asc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *InventoryLogGormRepository) ListByTypeAndRelated(ctx context.Context, t model.InventoryLogType, relatedID int64) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("type = ? AND related_id = ?", t, relatedID).
		Order("id asc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *InventoryLogGormRepository) SumDeltaByVariant(ctx context.Context, variantID int64, since time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.InventoryLog{}).
		Where("variant_id = ? AND created_at >= ?", variantID, since).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return sum, nil
}
