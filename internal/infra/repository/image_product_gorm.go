package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ImageProductGormRepository struct{ db *gorm.DB }

func NewImageProductGormRepository(db *gorm.DB) *ImageProductGormRepository {
	return &ImageProductGormRepository{db: db}
}

func (r *ImageProductGormRepository) List(ctx context.Context, variantID *int64) ([]model.ImageProduct, error) {
	q := r.db.WithContext(ctx).Model(&model.ImageProduct{})
	if variantID != nil {
		q = q.Where("variant_id = ?", *variantID)
	}

	var imgs []model.ImageProduct
	if err := q.Order("sort_order asc, id asc").Find(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}

func (r *ImageProductGormRepository) FindByID(ctx context.Context, id int64) (model.ImageProduct, error) {
	var img model.ImageProduct
	err := r.db.WithContext(ctx).First(&img, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ImageProduct{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ImageProduct{}, err
	}
	return img, nil
}

func (r *ImageProductGormRepository) Create(ctx context.Context, img model.ImageProduct) (model.ImageProduct, error) {
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return model.ImageProduct{}, err
	}
	return img, nil
}

func (r *ImageProductGormRepository) Update(ctx context.Context, img model.ImageProduct) error {
	res := r.db.WithContext(ctx).Model(&model.ImageProduct{}).Where("id = ?", img.ID).Updates(map[string]interface{}{
		"url":         img.URL,
		"sort_order":  img.SortOrder,
		"description": img.Description,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ImageProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.ImageProduct{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
