package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// fake: TransactionManager / TxRepos
// =====================

// fakeTxReposはテスト用のrepo束。未使用のrepoはnilのままでよい。
type fakeTxRepos struct {
	products      repo.ProductRepository
	variants      repo.VariantRepository
	inventoryLogs repo.InventoryLogRepository
	receipts      repo.ReceiptRepository
	receiptItems  repo.ReceiptItemRepository
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	returns       repo.ReturnRequestRepository
	carts         repo.CartRepository
	cartItems     repo.CartItemRepository
}

func (f *fakeTxRepos) Products() repo.ProductRepository           { return f.products }
func (f *fakeTxRepos) Variants() repo.VariantRepository           { return f.variants }
func (f *fakeTxRepos) InventoryLogs() repo.InventoryLogRepository { return f.inventoryLogs }
func (f *fakeTxRepos) Receipts() repo.ReceiptRepository           { return f.receipts }
func (f *fakeTxRepos) ReceiptItems() repo.ReceiptItemRepository   { return f.receiptItems }
func (f *fakeTxRepos) Orders() repo.OrderRepository               { return f.orders }
func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository       { return f.orderItems }
func (f *fakeTxRepos) Returns() repo.ReturnRequestRepository      { return f.returns }
func (f *fakeTxRepos) Carts() repo.CartRepository                 { return f.carts }
func (f *fakeTxRepos) CartItems() repo.CartItemRepository         { return f.cartItems }

// fakeTxManagerはfnに固定のrepo束を渡すだけ。
// fnがerrorを返したら呼び出し元にそのまま返す（＝ロールバック相当）。
type fakeTxManager struct {
	repos repo.TxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// Mock: VariantRepository
// =====================

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id int64) (model.ProductVariant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	args := m.Called(ctx, productID)
	vs, _ := args.Get(0).([]model.ProductVariant)
	return vs, args.Error(1)
}

func (m *MockVariantRepository) List(ctx context.Context, productID *int64) ([]model.ProductVariant, error) {
	args := m.Called(ctx, productID)
	vs, _ := args.Get(0).([]model.ProductVariant)
	return vs, args.Error(1)
}

func (m *MockVariantRepository) LockForUpdate(ctx context.Context, id int64) (model.ProductVariant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockVariantRepository) Create(ctx context.Context, v model.ProductVariant) (model.ProductVariant, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(model.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, v model.ProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: InventoryLogRepository
// =====================

type MockInventoryLogRepository struct {
	mock.Mock
}

func (m *MockInventoryLogRepository) Create(ctx context.Context, log model.InventoryLog) (model.InventoryLog, error) {
	args := m.Called(ctx, log)
	out, _ := args.Get(0).(model.InventoryLog)
	return out, args.Error(1)
}

func (m *MockInventoryLogRepository) List(ctx context.Context, f repo.InventoryLogFilter) ([]model.InventoryLog, int64, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.InventoryLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryLogRepository) ListByVariantID(ctx context.Context, variantID int64) ([]model.InventoryLog, error) {
	args := m.Called(ctx, variantID)
	logs, _ := args.Get(0).([]model.InventoryLog)
	return logs, args.Error(1)
}

func (m *MockInventoryLogRepository) ListByTypeAndRelated(ctx context.Context, t model.InventoryLogType, relatedID int64) ([]model.InventoryLog, error) {
	args := m.Called(ctx, t, relatedID)
	logs, _ := args.Get(0).([]model.InventoryLog)
	return logs, args.Error(1)
}

func (m *MockInventoryLogRepository) SumDeltaByVariant(ctx context.Context, variantID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, variantID, since)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) RefreshInStock(ctx context.Context, productID int64) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ReconcileInStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: ReceiptRepository / ReceiptItemRepository
// =====================

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, r model.Receipt) (model.Receipt, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(model.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id int64) (model.Receipt, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) List(ctx context.Context, q repo.ReceiptListQuery) ([]model.Receipt, int64, error) {
	args := m.Called(ctx, q)
	rs, _ := args.Get(0).([]model.Receipt)
	return rs, args.Get(1).(int64), args.Error(2)
}

func (m *MockReceiptRepository) MarkReverted(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockReceiptItemRepository struct {
	mock.Mock
}

func (m *MockReceiptItemRepository) CreateBulk(ctx context.Context, receiptID int64, items []model.ReceiptItem) error {
	args := m.Called(ctx, receiptID, items)
	return args.Error(0)
}

func (m *MockReceiptItemRepository) ListByReceiptID(ctx context.Context, receiptID int64) ([]model.ReceiptItem, error) {
	args := m.Called(ctx, receiptID)
	items, _ := args.Get(0).([]model.ReceiptItem)
	return items, args.Error(1)
}

// =====================
// Mock: OrderRepository / OrderItemRepository
// =====================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o model.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, q repo.OrderListQuery) ([]model.Order, int64, error) {
	args := m.Called(ctx, q)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Update(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// =====================
// Mock: ReturnRequestRepository
// =====================

type MockReturnRequestRepository struct {
	mock.Mock
}

func (m *MockReturnRequestRepository) Create(ctx context.Context, r model.ReturnRequest) (model.ReturnRequest, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(model.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepository) FindByID(ctx context.Context, id int64) (model.ReturnRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepository) LockForUpdate(ctx context.Context, id int64) (model.ReturnRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestRepository) List(ctx context.Context, q repo.ReturnListQuery) ([]model.ReturnRequest, int64, error) {
	args := m.Called(ctx, q)
	rs, _ := args.Get(0).([]model.ReturnRequest)
	return rs, args.Get(1).(int64), args.Error(2)
}

func (m *MockReturnRequestRepository) Update(ctx context.Context, r model.ReturnRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// =====================
// Mock: CartRepository / CartItemRepository
// =====================

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockCartRepository) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockCartRepository) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockCartItemRepository) FindByID(ctx context.Context, id int64) (model.CartItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *MockCartItemRepository) Upsert(ctx context.Context, item model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartItemRepository) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockCartItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: SupplierRepository
// =====================

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) List(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]model.Supplier)
	return ss, args.Error(1)
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, s model.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: ImageProductRepository
// =====================

type MockImageProductRepository struct {
	mock.Mock
}

func (m *MockImageProductRepository) List(ctx context.Context, variantID *int64) ([]model.ImageProduct, error) {
	args := m.Called(ctx, variantID)
	imgs, _ := args.Get(0).([]model.ImageProduct)
	return imgs, args.Error(1)
}

func (m *MockImageProductRepository) FindByID(ctx context.Context, id int64) (model.ImageProduct, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ImageProduct), args.Error(1)
}

func (m *MockImageProductRepository) Create(ctx context.Context, img model.ImageProduct) (model.ImageProduct, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(model.ImageProduct), args.Error(1)
}

func (m *MockImageProductRepository) Update(ctx context.Context, img model.ImageProduct) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *MockImageProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	us, _ := args.Get(0).([]model.User)
	return us, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, rt *model.RefreshToken) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, hash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}
