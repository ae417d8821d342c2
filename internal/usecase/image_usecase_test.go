package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newImageUC() (*usecase.ImageUsecase, *MockImageProductRepository, *MockVariantRepository) {
	images := new(MockImageProductRepository)
	variants := new(MockVariantRepository)
	return usecase.NewImageUsecase(images, variants), images, variants
}

func TestImageUsecase_AdminCreate_Success(t *testing.T) {
	ctx := context.Background()
	u, images, variants := newImageUC()

	variants.On("FindByID", mock.Anything, int64(7)).Return(model.ProductVariant{ID: 7}, nil)
	images.On("Create", mock.Anything, mock.MatchedBy(func(img model.ImageProduct) bool {
		return img.VariantID == 7 && img.URL == "https://cdn.example.com/v7/front.jpg" && img.SortOrder == 1
	})).Return(model.ImageProduct{ID: 12, VariantID: 7, URL: "https://cdn.example.com/v7/front.jpg", SortOrder: 1}, nil)

	out, err := u.AdminCreate(ctx, 99, usecase.AdminImageInput{
		VariantID: 7,
		URL:       "https://cdn.example.com/v7/front.jpg",
		SortOrder: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(12), out.ID)

	images.AssertExpectations(t)
}

func TestImageUsecase_AdminCreate_RelativeURLRejected(t *testing.T) {
	ctx := context.Background()
	u, images, _ := newImageUC()

	_, err := u.AdminCreate(ctx, 99, usecase.AdminImageInput{
		VariantID: 7,
		URL:       "uploads/images/front.jpg",
	})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImageUsecase_AdminCreate_UnknownVariant(t *testing.T) {
	ctx := context.Background()
	u, images, variants := newImageUC()

	variants.On("FindByID", mock.Anything, int64(999)).Return(model.ProductVariant{}, repo.ErrNotFound)

	_, err := u.AdminCreate(ctx, 99, usecase.AdminImageInput{
		VariantID: 999,
		URL:       "https://cdn.example.com/x.jpg",
	})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImageUsecase_AdminUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	u, images, _ := newImageUC()

	images.On("FindByID", mock.Anything, int64(12)).Return(model.ImageProduct{
		ID: 12, VariantID: 7, URL: "https://cdn.example.com/v7/front.jpg", SortOrder: 1,
	}, nil)
	images.On("Update", mock.Anything, mock.MatchedBy(func(img model.ImageProduct) bool {
		//URLは据え置き、sort_orderだけ変わる
		return img.ID == 12 && img.URL == "https://cdn.example.com/v7/front.jpg" && img.SortOrder == 3
	})).Return(nil)

	order := 3
	out, err := u.AdminUpdate(ctx, 99, 12, usecase.AdminImageUpdateInput{SortOrder: &order})
	assert.NoError(t, err)
	assert.Equal(t, 3, out.SortOrder)

	images.AssertExpectations(t)
}
