package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type receiptMocks struct {
	variants     *MockVariantRepository
	logs         *MockInventoryLogRepository
	products     *MockProductRepository
	receipts     *MockReceiptRepository
	receiptItems *MockReceiptItemRepository
	suppliers    *MockSupplierRepository
}

func newReceiptUC() (*usecase.ReceiptUsecase, receiptMocks) {
	m := receiptMocks{
		variants:     new(MockVariantRepository),
		logs:         new(MockInventoryLogRepository),
		products:     new(MockProductRepository),
		receipts:     new(MockReceiptRepository),
		receiptItems: new(MockReceiptItemRepository),
		suppliers:    new(MockSupplierRepository),
	}
	tx := &fakeTxManager{repos: &fakeTxRepos{
		variants:      m.variants,
		inventoryLogs: m.logs,
		products:      m.products,
		receipts:      m.receipts,
		receiptItems:  m.receiptItems,
	}}
	return usecase.NewReceiptUsecase(tx, m.suppliers), m
}

func TestReceiptUsecase_Create_AddsStockAndWritesLog(t *testing.T) {
	ctx := context.Background()
	u, m := newReceiptUC()

	m.suppliers.On("FindByID", mock.Anything, int64(1)).Return(model.Supplier{ID: 1, Name: "卸A"}, nil)

	m.receipts.On("Create", mock.Anything, mock.MatchedBy(func(r model.Receipt) bool {
		return r.SupplierID == 1 && r.TotalPrice == 4*300
	})).Return(model.Receipt{ID: 50, SupplierID: 1, TotalPrice: 1200}, nil)

	m.receiptItems.On("CreateBulk", mock.Anything, int64(50), mock.MatchedBy(func(items []model.ReceiptItem) bool {
		return len(items) == 1 && items[0].VariantID == 5 && items[0].Quantity == 4 && items[0].Subtotal == 1200
	})).Return(nil)

	//在庫10のバリアントに+4 → 14
	m.variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{ID: 5, ProductID: 2, Quantity: 10}, nil)
	m.variants.On("UpdateQuantity", mock.Anything, int64(5), int64(14)).Return(nil)

	m.logs.On("Create", mock.Anything, mock.MatchedBy(func(l model.InventoryLog) bool {
		return l.Type == model.InventoryLogReceipt &&
			l.Delta == 4 &&
			l.QuantityBefore == 10 &&
			l.QuantityAfter == 14 &&
			l.RelatedID != nil && *l.RelatedID == 50 &&
			l.Note == "Receipt #50"
	})).Return(model.InventoryLog{ID: 9}, nil)

	m.products.On("RefreshInStock", mock.Anything, int64(2)).Return(true, nil)

	out, err := u.Create(ctx, 99, usecase.CreateReceiptInput{
		SupplierID: 1,
		Items:      []usecase.ReceiptLineInput{{VariantID: 5, Quantity: 4, Price: 300}},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(50), out.Receipt.ID)

	m.variants.AssertExpectations(t)
	m.logs.AssertExpectations(t)
	m.receipts.AssertExpectations(t)
}

func TestReceiptUsecase_Create_UnknownVariantRollsBackWholeReceipt(t *testing.T) {
	ctx := context.Background()
	u, m := newReceiptUC()

	m.suppliers.On("FindByID", mock.Anything, int64(1)).Return(model.Supplier{ID: 1}, nil)
	m.receipts.On("Create", mock.Anything, mock.Anything).Return(model.Receipt{ID: 51}, nil)
	m.receiptItems.On("CreateBulk", mock.Anything, int64(51), mock.Anything).Return(nil)

	//1行目は成功、2行目で未知のバリアント
	m.variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{ID: 5, ProductID: 2, Quantity: 10}, nil)
	m.variants.On("UpdateQuantity", mock.Anything, int64(5), int64(12)).Return(nil)
	m.logs.On("Create", mock.Anything, mock.Anything).Return(model.InventoryLog{}, nil)
	m.products.On("RefreshInStock", mock.Anything, int64(2)).Return(true, nil)
	m.variants.On("LockForUpdate", mock.Anything, int64(999)).Return(model.ProductVariant{}, repo.ErrNotFound)

	_, err := u.Create(ctx, 99, usecase.CreateReceiptInput{
		SupplierID: 1,
		Items: []usecase.ReceiptLineInput{
			{VariantID: 5, Quantity: 2, Price: 300},
			{VariantID: 999, Quantity: 1, Price: 300},
		},
	})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestReceiptUsecase_Revert_SubtractsAllItems(t *testing.T) {
	ctx := context.Background()
	u, m := newReceiptUC()

	m.receipts.On("FindByID", mock.Anything, int64(50)).Return(model.Receipt{ID: 50, SupplierID: 1}, nil)
	m.receiptItems.On("ListByReceiptID", mock.Anything, int64(50)).Return([]model.ReceiptItem{
		{ReceiptID: 50, VariantID: 5, Quantity: 4, Price: 300},
	}, nil)

	m.variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{ID: 5, ProductID: 2, Quantity: 14}, nil)
	m.variants.On("UpdateQuantity", mock.Anything, int64(5), int64(10)).Return(nil)

	m.logs.On("Create", mock.Anything, mock.MatchedBy(func(l model.InventoryLog) bool {
		return l.Type == model.InventoryLogRevertReceipt &&
			l.Delta == -4 &&
			l.QuantityBefore == 14 &&
			l.QuantityAfter == 10
	})).Return(model.InventoryLog{ID: 20, Delta: -4}, nil)

	m.products.On("RefreshInStock", mock.Anything, int64(2)).Return(true, nil)
	m.receipts.On("MarkReverted", mock.Anything, int64(50), mock.AnythingOfType("time.Time")).Return(nil)

	logs, err := u.Revert(ctx, 99, 50)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, int64(-4), logs[0].Delta)

	m.receipts.AssertExpectations(t)
	m.variants.AssertExpectations(t)
}

func TestReceiptUsecase_Revert_AlreadyReverted(t *testing.T) {
	ctx := context.Background()
	u, m := newReceiptUC()

	at := time.Now()
	m.receipts.On("FindByID", mock.Anything, int64(50)).Return(model.Receipt{ID: 50, RevertedAt: &at}, nil)

	_, err := u.Revert(ctx, 99, 50)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	//二重取り消しでは在庫に触れない
	m.variants.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
	m.receipts.AssertNotCalled(t, "MarkReverted", mock.Anything, mock.Anything, mock.Anything)
}

// 入荷分が既に売れていて引くと負になる場合は取り消し自体を中止する
func TestReceiptUsecase_Revert_BlockedWhenStockAlreadySold(t *testing.T) {
	ctx := context.Background()
	u, m := newReceiptUC()

	m.receipts.On("FindByID", mock.Anything, int64(50)).Return(model.Receipt{ID: 50}, nil)
	m.receiptItems.On("ListByReceiptID", mock.Anything, int64(50)).Return([]model.ReceiptItem{
		{ReceiptID: 50, VariantID: 5, Quantity: 4},
	}, nil)
	m.variants.On("LockForUpdate", mock.Anything, int64(5)).Return(model.ProductVariant{ID: 5, ProductID: 2, Quantity: 2}, nil)

	_, err := u.Revert(ctx, 99, 50)
	assert.Error(t, err)

	ise, ok := usecase.AsInsufficientStock(err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), ise.Available)
	assert.Equal(t, int64(4), ise.Requested)

	m.receipts.AssertNotCalled(t, "MarkReverted", mock.Anything, mock.Anything, mock.Anything)
}
