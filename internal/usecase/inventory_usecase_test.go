package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInventoryUC(variants *MockVariantRepository, logs *MockInventoryLogRepository, products *MockProductRepository) *usecase.InventoryUsecase {
	tx := &fakeTxManager{repos: &fakeTxRepos{
		variants:      variants,
		inventoryLogs: logs,
		products:      products,
	}}
	return usecase.NewInventoryUsecase(tx, logs, products)
}

func TestInventoryUsecase_Adjust_Success(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	logs := new(MockInventoryLogRepository)
	products := new(MockProductRepository)

	variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{
		ID:        5,
		ProductID: 2,
		Quantity:  10,
	}, nil)
	variants.On("UpdateQuantity", mock.Anything, int64(5), int64(14)).Return(nil)

	//ログはbefore/after/deltaの整合が取れた形で書かれる
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l model.InventoryLog) bool {
		return l.VariantID == 5 &&
			l.Delta == 4 &&
			l.QuantityBefore == 10 &&
			l.QuantityAfter == 14 &&
			l.Type == model.InventoryLogAdjustment &&
			l.RelatedID == nil &&
			l.UserID != nil && *l.UserID == 99 &&
			l.Note == "棚卸しで+4"
	})).Return(model.InventoryLog{ID: 1, VariantID: 5, Delta: 4, QuantityBefore: 10, QuantityAfter: 14, Type: model.InventoryLogAdjustment}, nil)

	products.On("RefreshInStock", mock.Anything, int64(2)).Return(true, nil)

	u := newInventoryUC(variants, logs, products)

	out, err := u.Adjust(ctx, 99, usecase.AdjustStockInput{VariantID: 5, Delta: 4, Note: "棚卸しで+4"})
	assert.NoError(t, err)
	assert.Equal(t, int64(14), out.Variant.Quantity)
	assert.Equal(t, int64(10), out.Log.QuantityBefore)
	assert.Equal(t, int64(14), out.Log.QuantityAfter)

	variants.AssertExpectations(t)
	logs.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestInventoryUsecase_Adjust_InsufficientStock(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	logs := new(MockInventoryLogRepository)
	products := new(MockProductRepository)

	variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{
		ID:        5,
		ProductID: 2,
		Quantity:  3,
	}, nil)

	u := newInventoryUC(variants, logs, products)

	_, err := u.Adjust(ctx, 99, usecase.AdjustStockInput{VariantID: 5, Delta: -5, Note: "破損分を引く"})
	assert.Error(t, err)

	ise, ok := usecase.AsInsufficientStock(err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), ise.VariantID)
	assert.Equal(t, int64(3), ise.Available)
	assert.Equal(t, int64(5), ise.Requested)

	//在庫もログも書かれない
	variants.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInventoryUsecase_Adjust_ZeroDelta(t *testing.T) {
	u := newInventoryUC(new(MockVariantRepository), new(MockInventoryLogRepository), new(MockProductRepository))

	_, err := u.Adjust(context.Background(), 99, usecase.AdjustStockInput{VariantID: 5, Delta: 0, Note: "x"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestInventoryUsecase_Adjust_VariantNotFound(t *testing.T) {
	variants := new(MockVariantRepository)
	variants.On("LockForUpdate", mock.Anything, int64(42)).Return(model.ProductVariant{}, repo.ErrNotFound)

	u := newInventoryUC(variants, new(MockInventoryLogRepository), new(MockProductRepository))

	_, err := u.Adjust(context.Background(), 99, usecase.AdjustStockInput{VariantID: 42, Delta: 1, Note: "x"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// in_stock再計算の失敗は在庫操作を失敗させない
func TestInventoryUsecase_Adjust_RefreshFailureDoesNotRollback(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	logs := new(MockInventoryLogRepository)
	products := new(MockProductRepository)

	variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{ID: 5, ProductID: 2, Quantity: 1}, nil)
	variants.On("UpdateQuantity", mock.Anything, int64(5), int64(3)).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(model.InventoryLog{ID: 7}, nil)
	products.On("RefreshInStock", mock.Anything, int64(2)).Return(false, errors.New("projector down"))

	u := newInventoryUC(variants, logs, products)

	out, err := u.Adjust(ctx, 99, usecase.AdjustStockInput{VariantID: 5, Delta: 2, Note: "x"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Variant.Quantity)
}

func TestInventoryUsecase_ListLogs_InvalidType(t *testing.T) {
	u := newInventoryUC(new(MockVariantRepository), new(MockInventoryLogRepository), new(MockProductRepository))

	bad := "refund"
	_, err := u.ListLogs(context.Background(), usecase.ListLogsInput{Type: &bad})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestInventoryUsecase_Reconcile(t *testing.T) {
	products := new(MockProductRepository)
	products.On("ReconcileInStock", mock.Anything).Return(int64(3), nil)

	u := newInventoryUC(new(MockVariantRepository), new(MockInventoryLogRepository), products)

	out, err := u.Reconcile(context.Background(), 99)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Updated)
	products.AssertExpectations(t)
}
