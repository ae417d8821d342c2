package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReturnRequestGormRepository struct {
	db *gorm.DB
}

func NewReturnRequestGormRepository(db *gorm.DB) *ReturnRequestGormRepository {
	return &ReturnRequestGormRepository{db: db}
}

func (r *ReturnRequestGormRepository) Create(ctx context.Context, ret model.ReturnRequest) (model.ReturnRequest, error) {
	if err := r.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return model.ReturnRequest{}, err
	}
	return ret, nil
}

func (r *ReturnRequestGormRepository) FindByID(ctx context.Context, id int64) (model.ReturnRequest, error) {
	var ret model.ReturnRequest
	err := r.db.WithContext(ctx).First(&ret, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReturnRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ReturnRequest{}, err
	}
	return ret, nil
}

// 承認処理前のロック。processedの読み→書きを直列化する。
func (r *ReturnRequestGormRepository) LockForUpdate(ctx context.Context, id int64) (model.ReturnRequest, error) {
	var ret model.ReturnRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ret, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReturnRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ReturnRequest{}, err
	}
	return ret, nil
}

func (r *ReturnRequestGormRepository) List(ctx context.Context, q repo.ReturnListQuery) ([]model.ReturnRequest, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.ReturnRequest{})

	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	if q.OrderID != nil {
		tx = tx.Where("order_id = ?", *q.OrderID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 20
	}

	var rets []model.ReturnRequest
	err := tx.Order("created_at desc").Order("id desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rets).Error
	if err != nil {
		return nil, 0, err
	}
	return rets, total, nil
}

func (r *ReturnRequestGormRepository) Update(ctx context.Context, ret model.ReturnRequest) error {
	res := r.db.WithContext(ctx).Model(&model.ReturnRequest{}).Where("id = ?", ret.ID).Updates(map[string]interface{}{
		"status":     ret.Status,
		"admin_note": ret.AdminNote,
		"processed":  ret.Processed,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
