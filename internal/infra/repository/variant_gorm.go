package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VariantGormRepository struct {
	db *gorm.DB
}

func NewVariantGormRepository(db *gorm.DB) *VariantGormRepository {
	return &VariantGormRepository{db: db}
}

func (r *VariantGormRepository) FindByID(ctx context.Context, id int64) (model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductVariant{}, err
	}
	return v, nil
}

// 商品配下のバリアント。ロック順を安定させるためid昇順で返す。
func (r *VariantGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	var vs []model.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&vs).Error
	if err != nil {
		return nil, err
	}
	return vs, nil
}

func (r *VariantGormRepository) List(ctx context.Context, productID *int64) ([]model.ProductVariant, error) {
	tx := r.db.WithContext(ctx).Model(&model.ProductVariant{})
	if productID != nil {
		tx = tx.Where("product_id = ?", *productID)
	}

	var vs []model.ProductVariant
	if err := tx.Order("id asc").Find(&vs).Error; err != nil {
		return nil, err
	}
	return vs, nil
}

// SELECT ... FOR UPDATE。
// トランザクション外で呼んでもロックは即座に解放されるので意味がない。
// 必ずWithinTxの中で呼ぶこと。
func (r *VariantGormRepository) LockForUpdate(ctx context.Context, id int64) (model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductVariant{}, err
	}
	return v, nil
}

func (r *VariantGormRepository) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Where("id = ?", id).
		Update("quantity", quantity)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *VariantGormRepository) Create(ctx context.Context, v model.ProductVariant) (model.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return model.ProductVariant{}, err
	}
	return v, nil
}

func (r *VariantGormRepository) Update(ctx context.Context, v model.ProductVariant) error {
	// quantityはここでは触らない（在庫操作専用の経路で書く）
	res := r.db.WithContext(ctx).Model(&model.ProductVariant{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
		"product_id": v.ProductID,
		"color_id":   v.ColorID,
		"size_id":    v.SizeID,
		"price":      v.Price,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *VariantGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.ProductVariant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
