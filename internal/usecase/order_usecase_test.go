package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testCustomer() usecase.CustomerInput {
	return usecase.CustomerInput{
		Name:    "山田太郎",
		Email:   "taro@test.com",
		Phone:   "090-0000-0000",
		Address: "東京都",
	}
}

func i64(v int64) *int64 { return &v }

func TestOrderUsecase_Place_Success_LocksInAscendingIDOrder(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	logs := new(MockInventoryLogRepository)
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	orderItems := new(MockOrderItemRepository)

	v7 := model.ProductVariant{ID: 7, ProductID: 2, Price: 1000, Quantity: 10}
	v3 := model.ProductVariant{ID: 3, ProductID: 1, Price: 500, Quantity: 5}

	variants.On("LockForUpdate", mock.Anything, int64(7)).Return(v7, nil)
	variants.On("LockForUpdate", mock.Anything, int64(3)).Return(v3, nil)
	variants.On("UpdateQuantity", mock.Anything, int64(7), int64(8)).Return(nil)
	variants.On("UpdateQuantity", mock.Anything, int64(3), int64(4)).Return(nil)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "Tシャツ"}, nil)
	products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, Name: "パーカー"}, nil)
	products.On("RefreshInStock", mock.Anything, mock.Anything).Return(true, nil)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusPending &&
			o.PaymentMethod == model.PaymentCash &&
			o.TotalPrice == 2500 &&
			o.OrderCode != ""
	})).Return(int64(100), nil)
	orders.On("FindByID", mock.Anything, int64(100)).Return(model.Order{
		ID:            100,
		OrderCode:     "code",
		Status:        model.OrderStatusPending,
		PaymentMethod: model.PaymentCash,
		TotalPrice:    2500,
	}, nil)

	logs.On("Create", mock.Anything, mock.MatchedBy(func(l model.InventoryLog) bool {
		return l.Type == model.InventoryLogOrder && l.RelatedID != nil && *l.RelatedID == 100
	})).Return(model.InventoryLog{}, nil)

	orderItems.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].VariantID == 7 && items[0].Quantity == 2 && items[0].Subtotal == 2000 &&
			items[1].VariantID == 3 && items[1].Quantity == 1 && items[1].Subtotal == 500
	})).Return(nil)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		variants:      variants,
		inventoryLogs: logs,
		products:      products,
		orders:        orders,
		orderItems:    orderItems,
	}}
	u := usecase.NewOrderUsecase(tx)

	out, err := u.Place(ctx, nil, usecase.PlaceOrderInput{
		Customer:      testCustomer(),
		PaymentMethod: "cod",
		Items: []usecase.OrderLineInput{
			{VariantID: i64(7), Quantity: 2},
			{VariantID: i64(3), Quantity: 1},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(100), out.ID)
	assert.Equal(t, int64(2500), out.TotalPrice)
	assert.Len(t, out.Items, 2)

	//先頭のロック2回はid昇順（7より先に3）でなければならない
	var lockOrder []int64
	for _, call := range variants.Calls {
		if call.Method == "LockForUpdate" {
			lockOrder = append(lockOrder, call.Arguments.Get(1).(int64))
		}
	}
	assert.GreaterOrEqual(t, len(lockOrder), 2)
	assert.Equal(t, []int64{3, 7}, lockOrder[:2])

	variants.AssertExpectations(t)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}

func TestOrderUsecase_Place_InsufficientStock_AllOrNothing(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	orders := new(MockOrderRepository)

	variants.On("LockForUpdate", mock.Anything, int64(3)).Return(model.ProductVariant{ID: 3, ProductID: 1, Price: 500, Quantity: 5}, nil)
	variants.On("LockForUpdate", mock.Anything, int64(7)).Return(model.ProductVariant{ID: 7, ProductID: 2, Price: 1000, Quantity: 1}, nil)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		variants: variants,
		orders:   orders,
	}}
	u := usecase.NewOrderUsecase(tx)

	_, err := u.Place(ctx, nil, usecase.PlaceOrderInput{
		Customer:      testCustomer(),
		PaymentMethod: "cod",
		Items: []usecase.OrderLineInput{
			{VariantID: i64(3), Quantity: 1},
			{VariantID: i64(7), Quantity: 2},
		},
	})
	assert.Error(t, err)

	ise, ok := usecase.AsInsufficientStock(err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), ise.VariantID)
	assert.Equal(t, int64(1), ise.Available)
	assert.Equal(t, int64(2), ise.Requested)

	//注文は作られず、在庫も1行も動かない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	variants.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

// 同じバリアントが複数行に出る場合、合計要求量で検証される
func TestOrderUsecase_Place_AggregatesRequestAcrossLines(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	variants.On("LockForUpdate", mock.Anything, int64(7)).Return(model.ProductVariant{ID: 7, ProductID: 2, Price: 1000, Quantity: 3}, nil)

	tx := &fakeTxManager{repos: &fakeTxRepos{variants: variants}}
	u := usecase.NewOrderUsecase(tx)

	_, err := u.Place(ctx, nil, usecase.PlaceOrderInput{
		Customer:      testCustomer(),
		PaymentMethod: "cod",
		Items: []usecase.OrderLineInput{
			{VariantID: i64(7), Quantity: 2},
			{VariantID: i64(7), Quantity: 2},
		},
	})
	assert.Error(t, err)

	ise, ok := usecase.AsInsufficientStock(err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), ise.Available)
	assert.Equal(t, int64(4), ise.Requested)
}

// product_id指定の行は在庫が足りる最小idのバリアントに解決される
func TestOrderUsecase_Place_ResolvesProductLineToLowestSufficientVariant(t *testing.T) {
	ctx := context.Background()

	variants := new(MockVariantRepository)
	logs := new(MockInventoryLogRepository)
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	orderItems := new(MockOrderItemRepository)

	variants.On("ListByProductID", mock.Anything, int64(9)).Return([]model.ProductVariant{
		{ID: 11, ProductID: 9, Price: 800, Quantity: 0},
		{ID: 12, ProductID: 9, Price: 800, Quantity: 5},
	}, nil)
	variants.On("LockForUpdate", mock.Anything, int64(12)).Return(model.ProductVariant{ID: 12, ProductID: 9, Price: 800, Quantity: 5}, nil)
	variants.On("UpdateQuantity", mock.Anything, int64(12), int64(3)).Return(nil)

	products.On("FindByID", mock.Anything, int64(9)).Return(model.Product{ID: 9, Name: "キャップ"}, nil)
	products.On("RefreshInStock", mock.Anything, int64(9)).Return(true, nil)

	orders.On("Create", mock.Anything, mock.Anything).Return(int64(200), nil)
	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{ID: 200, TotalPrice: 1600}, nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(model.InventoryLog{}, nil)
	orderItems.On("CreateBulk", mock.Anything, int64(200), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 && items[0].VariantID == 12
	})).Return(nil)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		variants:      variants,
		inventoryLogs: logs,
		products:      products,
		orders:        orders,
		orderItems:    orderItems,
	}}
	u := usecase.NewOrderUsecase(tx)

	out, err := u.Place(ctx, nil, usecase.PlaceOrderInput{
		Customer:      testCustomer(),
		PaymentMethod: "cod",
		Items: []usecase.OrderLineInput{
			{ProductID: i64(9), Quantity: 2},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(200), out.ID)

	variants.AssertExpectations(t)
	orderItems.AssertExpectations(t)
}
