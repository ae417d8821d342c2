package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ImageUsecase はSKU画像レコードの管理。
// 保存するのはURLだけで、ファイル配信は外部に任せる。
type ImageUsecase struct {
	images   repo.ImageProductRepository
	variants repo.VariantRepository
}

func NewImageUsecase(images repo.ImageProductRepository, variants repo.VariantRepository) *ImageUsecase {
	return &ImageUsecase{images: images, variants: variants}
}

func (u *ImageUsecase) List(ctx context.Context, variantID *int64) ([]model.ImageProduct, error) {
	if variantID != nil && *variantID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}

	imgs, err := u.images.List(ctx, variantID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return imgs, nil
}

func (u *ImageUsecase) Get(ctx context.Context, imageID int64) (model.ImageProduct, error) {
	if imageID <= 0 {
		return model.ImageProduct{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	img, err := u.images.FindByID(ctx, imageID)
	if err == repo.ErrNotFound {
		return model.ImageProduct{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ImageProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

type AdminImageInput struct {
	VariantID   int64
	URL         string
	SortOrder   int
	Description string
}

func (u *ImageUsecase) AdminCreate(ctx context.Context, adminUserID int64, in AdminImageInput) (model.ImageProduct, error) {
	if adminUserID <= 0 {
		return model.ImageProduct{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.VariantID <= 0 {
		return model.ImageProduct{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	if err := validateImageURL(in.URL); err != nil {
		return model.ImageProduct{}, err
	}

	if _, err := u.variants.FindByID(ctx, in.VariantID); err != nil {
		if err == repo.ErrNotFound {
			return model.ImageProduct{}, NewHTTPError(http.StatusBadRequest, "variant not found")
		}
		return model.ImageProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	img, err := u.images.Create(ctx, model.ImageProduct{
		VariantID:   in.VariantID,
		URL:         strings.TrimSpace(in.URL),
		SortOrder:   in.SortOrder,
		Description: in.Description,
	})
	if err != nil {
		return model.ImageProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

type AdminImageUpdateInput struct {
	URL         *string
	SortOrder   *int
	Description *string
}

func (u *ImageUsecase) AdminUpdate(ctx context.Context, adminUserID int64, imageID int64, in AdminImageUpdateInput) (model.ImageProduct, error) {
	if adminUserID <= 0 {
		return model.ImageProduct{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if imageID <= 0 {
		return model.ImageProduct{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	img, err := u.images.FindByID(ctx, imageID)
	if err == repo.ErrNotFound {
		return model.ImageProduct{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ImageProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.URL != nil {
		if err := validateImageURL(*in.URL); err != nil {
			return model.ImageProduct{}, err
		}
		img.URL = strings.TrimSpace(*in.URL)
	}
	if in.SortOrder != nil {
		img.SortOrder = *in.SortOrder
	}
	if in.Description != nil {
		img.Description = *in.Description
	}

	if err := u.images.Update(ctx, img); err != nil {
		if err == repo.ErrNotFound {
			return model.ImageProduct{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.ImageProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

func (u *ImageUsecase) AdminDelete(ctx context.Context, adminUserID int64, imageID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if imageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.images.Delete(ctx, imageID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// http(s)の絶対URLのみ受け付ける
func validateImageURL(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NewHTTPError(http.StatusBadRequest, "url required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return NewHTTPError(http.StatusBadRequest, "url must be absolute")
	}
	if len(s) > 2048 {
		return NewHTTPError(http.StatusBadRequest, "url too long")
	}
	return nil
}
