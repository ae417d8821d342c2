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

// SKU削除は最後の在庫ありSKUかもしれないので、同一トランザクションで
// in_stockを再計算する
func TestProductUsecase_AdminDeleteVariant_RefreshesAvailability(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	products := new(MockProductRepository)
	tx := &fakeTxManager{repos: &fakeTxRepos{variants: variants, products: products}}
	u := usecase.NewProductUsecase(tx, products, variants, nil, nil, nil)

	variants.On("FindByID", mock.Anything, int64(7)).Return(model.ProductVariant{ID: 7, ProductID: 3, Quantity: 4}, nil)
	variants.On("Delete", mock.Anything, int64(7)).Return(nil)
	//唯一の在庫ありSKUが消えたのでfalseへ落ちる
	products.On("RefreshInStock", mock.Anything, int64(3)).Return(false, nil)

	err := u.AdminDeleteVariant(ctx, 99, 7)
	assert.NoError(t, err)

	variants.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestProductUsecase_AdminDeleteVariant_NotFound(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	products := new(MockProductRepository)
	tx := &fakeTxManager{repos: &fakeTxRepos{variants: variants, products: products}}
	u := usecase.NewProductUsecase(tx, products, variants, nil, nil, nil)

	variants.On("FindByID", mock.Anything, int64(42)).Return(model.ProductVariant{}, repo.ErrNotFound)

	err := u.AdminDeleteVariant(ctx, 99, 42)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	variants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "RefreshInStock", mock.Anything, mock.Anything)
}
