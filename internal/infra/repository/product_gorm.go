package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、検索/カテゴリ/在庫有無/ソート/ページング付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 公開（is_active=true）かつ、削除されていないものだけ
	tx = tx.Where("is_active = ?", true)

	// q はnameを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.InStock != nil {
		tx = tx.Where("in_stock = ?", *q.InStock)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	switch q.Sort {
	case "name_asc":
		tx = tx.Order("name asc").Order("id asc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新。in_stockは含めない（導出値なのでRefreshInStockだけが書く）。
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id": p.CategoryID,
		"name":        p.Name,
		"description": p.Description,
		"is_active":   p.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// in_stock = 「quantity>0のバリアントが存在するか」を再計算して保存。
// 冪等なので何度呼んでも同じ結果になる。
func (r *ProductGormRepository) RefreshInStock(ctx context.Context, productID int64) (bool, error) {
	var inStock bool
	err := r.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Select("count(*) > 0").
		Where("product_id = ? AND quantity > 0", productID).
		Find(&inStock).Error
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND in_stock <> ?", productID, inStock).
		Update("in_stock", inStock)
	if res.Error != nil {
		return false, res.Error
	}
	return inStock, nil
}

// 全商品のin_stockを一括再計算。projectorが失敗した際のドリフト解消用。
func (r *ProductGormRepository) ReconcileInStock(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE products p
		SET in_stock = EXISTS (
			SELECT 1 FROM product_variants v
			WHERE v.product_id = p.id AND v.quantity > 0
		)
		WHERE p.in_stock <> EXISTS (
			SELECT 1 FROM product_variants v
			WHERE v.product_id = p.id AND v.quantity > 0
		)`)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
