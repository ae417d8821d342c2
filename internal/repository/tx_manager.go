package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Variants() VariantRepository
	InventoryLogs() InventoryLogRepository
	Receipts() ReceiptRepository
	ReceiptItems() ReceiptItemRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Returns() ReturnRequestRepository
	Carts() CartRepository
	CartItems() CartItemRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全部ロールバックされる。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
