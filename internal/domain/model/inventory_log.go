package model

import "time"

// 在庫が動いた理由の種別。
type InventoryLogType string

const (
	//仕入れ入荷（+）
	InventoryLogReceipt InventoryLogType = "receipt"
	//注文による払い出し（-）
	InventoryLogOrder InventoryLogType = "order"
	//手動調整（±）
	InventoryLogAdjustment InventoryLogType = "adjustment"
	//入荷の取り消し（-）
	InventoryLogRevertReceipt InventoryLogType = "revert_receipt"
	//返品承認による戻し（+）
	InventoryLogReturn InventoryLogType = "return"
)

// 在庫変動の監査ログ。1変動＝1行、追記専用（更新・削除しない）。
// QuantityAfter == QuantityBefore + Delta が常に成り立つ。
type InventoryLog struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	VariantID int64            `gorm:"not null;index" json:"variant_id"`
	Delta     int64            `gorm:"not null" json:"delta"`

	//変動直前・直後の在庫数のスナップショット
	QuantityBefore int64 `gorm:"not null" json:"quantity_before"`
	QuantityAfter  int64 `gorm:"not null" json:"quantity_after"`

	Type InventoryLogType `gorm:"type:varchar(30);not null;index" json:"type"`

	//入荷ID・注文ID・返品IDなど（調整はnull）
	RelatedID *int64 `gorm:"index" json:"related_id"`

	//操作したユーザー（未ログイン操作はnull）
	UserID *int64 `gorm:"index" json:"user_id"`

	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime" json:"created_at"`
}
