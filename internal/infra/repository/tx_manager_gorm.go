package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
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

func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) Variants() repo.VariantRepository           { return r.variants }
func (r *txReposGorm) InventoryLogs() repo.InventoryLogRepository { return r.inventoryLogs }
func (r *txReposGorm) Receipts() repo.ReceiptRepository           { return r.receipts }
func (r *txReposGorm) ReceiptItems() repo.ReceiptItemRepository   { return r.receiptItems }
func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposGorm) Returns() repo.ReturnRequestRepository      { return r.returns }
func (r *txReposGorm) Carts() repo.CartRepository                 { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository         { return r.cartItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:      NewProductGormRepository(tx),
			variants:      NewVariantGormRepository(tx),
			inventoryLogs: NewInventoryLogGormRepository(tx),
			receipts:      NewReceiptGormRepository(tx),
			receiptItems:  NewReceiptItemGormRepository(tx),
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			returns:       NewReturnRequestGormRepository(tx),
			carts:         NewCartGormRepository(tx),
			cartItems:     NewCartItemGormRepository(tx),
		}
		return fn(r)
	})
}
