package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type returnMocks struct {
	variants *MockVariantRepository
	logs     *MockInventoryLogRepository
	products *MockProductRepository
	orders   *MockOrderRepository
	returns  *MockReturnRequestRepository
}

func newReturnUC() (*usecase.ReturnUsecase, returnMocks) {
	m := returnMocks{
		variants: new(MockVariantRepository),
		logs:     new(MockInventoryLogRepository),
		products: new(MockProductRepository),
		orders:   new(MockOrderRepository),
		returns:  new(MockReturnRequestRepository),
	}
	tx := &fakeTxManager{repos: &fakeTxRepos{
		variants:      m.variants,
		inventoryLogs: m.logs,
		products:      m.products,
		orders:        m.orders,
		returns:       m.returns,
	}}
	return usecase.NewReturnUsecase(tx), m
}

func strp(s string) *string { return &s }

func TestReturnUsecase_Create_DoesNotTouchStock(t *testing.T) {
	ctx := context.Background()
	u, m := newReturnUC()

	m.orders.On("FindByID", mock.Anything, int64(30)).Return(model.Order{ID: 30}, nil)
	m.variants.On("FindByID", mock.Anything, int64(7)).Return(model.ProductVariant{ID: 7, Quantity: 10}, nil)
	m.returns.On("Create", mock.Anything, mock.MatchedBy(func(r model.ReturnRequest) bool {
		return r.OrderID == 30 && r.VariantID == 7 && r.Quantity == 2 &&
			r.Status == model.ReturnStatusPending && !r.Processed
	})).Return(model.ReturnRequest{ID: 80, OrderID: 30, VariantID: 7, Quantity: 2, Status: model.ReturnStatusPending}, nil)

	ret, err := u.Create(ctx, nil, usecase.CreateReturnInput{
		OrderID:     30,
		VariantID:   7,
		Quantity:    2,
		Reason:      "サイズ違い",
		RequestedBy: "田中太郎",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.ReturnStatusPending, ret.Status)

	//申請の時点では在庫は動かさない
	m.variants.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
	m.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReturnUsecase_Review_FirstApprovalRestocks(t *testing.T) {
	ctx := context.Background()
	u, m := newReturnUC()

	m.returns.On("LockForUpdate", mock.Anything, int64(80)).Return(model.ReturnRequest{
		ID: 80, OrderID: 30, VariantID: 7, Quantity: 2,
		Status: model.ReturnStatusPending, Processed: false,
	}, nil)

	//在庫8のバリアントに+2で10に戻る
	m.variants.On("LockForUpdate", mock.Anything, int64(7)).Return(model.ProductVariant{ID: 7, ProductID: 3, Quantity: 8}, nil)
	m.variants.On("UpdateQuantity", mock.Anything, int64(7), int64(10)).Return(nil)

	m.logs.On("Create", mock.Anything, mock.MatchedBy(func(l model.InventoryLog) bool {
		return l.Type == model.InventoryLogReturn &&
			l.Delta == 2 &&
			l.QuantityBefore == 8 &&
			l.QuantityAfter == 10 &&
			l.RelatedID != nil && *l.RelatedID == 80 &&
			l.Note == "Return #80 approved"
	})).Return(model.InventoryLog{ID: 31}, nil)

	m.products.On("RefreshInStock", mock.Anything, int64(3)).Return(true, nil)

	m.returns.On("Update", mock.Anything, mock.MatchedBy(func(r model.ReturnRequest) bool {
		return r.ID == 80 && r.Status == model.ReturnStatusApproved && r.Processed
	})).Return(nil)

	out, err := u.Review(ctx, 99, 80, usecase.ReviewReturnInput{Status: strp("approved")})
	assert.NoError(t, err)
	assert.True(t, out.Processed)
	assert.Equal(t, model.ReturnStatusApproved, out.Status)

	m.variants.AssertExpectations(t)
	m.logs.AssertExpectations(t)
	m.returns.AssertExpectations(t)
}

// 承認の再送では在庫を二重に戻さない
func TestReturnUsecase_Review_SecondApprovalIsNoOpForStock(t *testing.T) {
	ctx := context.Background()
	u, m := newReturnUC()

	m.returns.On("LockForUpdate", mock.Anything, int64(80)).Return(model.ReturnRequest{
		ID: 80, OrderID: 30, VariantID: 7, Quantity: 2,
		Status: model.ReturnStatusApproved, Processed: true,
	}, nil)
	m.returns.On("Update", mock.Anything, mock.MatchedBy(func(r model.ReturnRequest) bool {
		return r.ID == 80 && r.Status == model.ReturnStatusApproved && r.Processed
	})).Return(nil)

	out, err := u.Review(ctx, 99, 80, usecase.ReviewReturnInput{Status: strp("approved")})
	assert.NoError(t, err)
	assert.True(t, out.Processed)

	m.variants.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
	m.variants.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	m.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReturnUsecase_Review_RejectionNeverTouchesStock(t *testing.T) {
	ctx := context.Background()
	u, m := newReturnUC()

	m.returns.On("LockForUpdate", mock.Anything, int64(80)).Return(model.ReturnRequest{
		ID: 80, VariantID: 7, Quantity: 2,
		Status: model.ReturnStatusPending, Processed: false,
	}, nil)
	m.returns.On("Update", mock.Anything, mock.MatchedBy(func(r model.ReturnRequest) bool {
		return r.Status == model.ReturnStatusRejected && !r.Processed && r.AdminNote == "期限超過"
	})).Return(nil)

	out, err := u.Review(ctx, 99, 80, usecase.ReviewReturnInput{
		Status:    strp("rejected"),
		AdminNote: strp("期限超過"),
	})
	assert.NoError(t, err)
	assert.False(t, out.Processed)

	m.variants.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
	m.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReturnUsecase_Review_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	u, m := newReturnUC()

	_, err := u.Review(ctx, 99, 80, usecase.ReviewReturnInput{Status: strp("shipped")})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	m.returns.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything)
}
