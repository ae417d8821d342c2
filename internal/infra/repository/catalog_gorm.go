package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// カテゴリ/色/サイズ/仕入先の単純CRUD。

type CategoryGormRepository struct{ db *gorm.DB }

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type ColorGormRepository struct{ db *gorm.DB }

func NewColorGormRepository(db *gorm.DB) *ColorGormRepository {
	return &ColorGormRepository{db: db}
}

func (r *ColorGormRepository) List(ctx context.Context) ([]model.Color, error) {
	var cs []model.Color
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *ColorGormRepository) FindByID(ctx context.Context, id int64) (model.Color, error) {
	var c model.Color
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Color{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Color{}, err
	}
	return c, nil
}

func (r *ColorGormRepository) Create(ctx context.Context, c model.Color) (model.Color, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Color{}, err
	}
	return c, nil
}

func (r *ColorGormRepository) Update(ctx context.Context, c model.Color) error {
	res := r.db.WithContext(ctx).Model(&model.Color{}).Where("id = ?", c.ID).Update("name", c.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ColorGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Color{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type SizeGormRepository struct{ db *gorm.DB }

func NewSizeGormRepository(db *gorm.DB) *SizeGormRepository {
	return &SizeGormRepository{db: db}
}

func (r *SizeGormRepository) List(ctx context.Context) ([]model.Size, error) {
	var ss []model.Size
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ss).Error; err != nil {
		return nil, err
	}
	return ss, nil
}

func (r *SizeGormRepository) FindByID(ctx context.Context, id int64) (model.Size, error) {
	var s model.Size
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Size{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Size{}, err
	}
	return s, nil
}

func (r *SizeGormRepository) Create(ctx context.Context, s model.Size) (model.Size, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Size{}, err
	}
	return s, nil
}

func (r *SizeGormRepository) Update(ctx context.Context, s model.Size) error {
	res := r.db.WithContext(ctx).Model(&model.Size{}).Where("id = ?", s.ID).Update("name", s.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SizeGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Size{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type SupplierGormRepository struct{ db *gorm.DB }

func NewSupplierGormRepository(db *gorm.DB) *SupplierGormRepository {
	return &SupplierGormRepository{db: db}
}

func (r *SupplierGormRepository) List(ctx context.Context) ([]model.Supplier, error) {
	var ss []model.Supplier
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ss).Error; err != nil {
		return nil, err
	}
	return ss, nil
}

func (r *SupplierGormRepository) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Supplier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Supplier{}, err
	}
	return s, nil
}

func (r *SupplierGormRepository) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Supplier{}, err
	}
	return s, nil
}

func (r *SupplierGormRepository) Update(ctx context.Context, s model.Supplier) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":    s.Name,
		"phone":   s.Phone,
		"email":   s.Email,
		"address": s.Address,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SupplierGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
