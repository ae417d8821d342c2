package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ReceiptGormRepository struct {
	db *gorm.DB
}

func NewReceiptGormRepository(db *gorm.DB) *ReceiptGormRepository {
	return &ReceiptGormRepository{db: db}
}

func (r *ReceiptGormRepository) Create(ctx context.Context, receipt model.Receipt) (model.Receipt, error) {
	if err := r.db.WithContext(ctx).Create(&receipt).Error; err != nil {
		return model.Receipt{}, err
	}
	return receipt, nil
}

func (r *ReceiptGormRepository) FindByID(ctx context.Context, id int64) (model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).First(&receipt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Receipt{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Receipt{}, err
	}
	return receipt, nil
}

func (r *ReceiptGormRepository) List(ctx context.Context, q repo.ReceiptListQuery) ([]model.Receipt, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Receipt{})

	if q.SupplierID != nil {
		tx = tx.Where("supplier_id = ?", *q.SupplierID)
	}
	if q.DateFrom != nil {
		tx = tx.Where("import_date >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		tx = tx.Where("import_date <= ?", *q.DateTo)
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

	var receipts []model.Receipt
	err := tx.Order("import_date desc").Order("id desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, 0, err
	}
	return receipts, total, nil
}

// 未取り消しの行だけを更新することで二重取り消しを防ぐ。
func (r *ReceiptGormRepository) MarkReverted(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Receipt{}).
		Where("id = ? AND reverted_at IS NULL", id).
		Update("reverted_at", at)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type ReceiptItemGormRepository struct {
	db *gorm.DB
}

func NewReceiptItemGormRepository(db *gorm.DB) *ReceiptItemGormRepository {
	return &ReceiptItemGormRepository{db: db}
}

func (r *ReceiptItemGormRepository) CreateBulk(ctx context.Context, receiptID int64, items []model.ReceiptItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ReceiptID = receiptID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *ReceiptItemGormRepository) ListByReceiptID(ctx context.Context, receiptID int64) ([]model.ReceiptItem, error) {
	var items []model.ReceiptItem
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
