package model

import "time"

// 仕入れ入荷。明細ごとに在庫が加算される。
type Receipt struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SupplierID int64  `gorm:"not null;index" json:"supplier_id"`
	UserID     *int64 `gorm:"index" json:"user_id"`
	Note       string `gorm:"type:text" json:"note"`
	TotalPrice int64  `gorm:"not null" json:"total_price"`
	ImportDate time.Time `gorm:"not null;index" json:"import_date"`

	//取り消し済みなら時刻が入る（二重取り消し防止）
	RevertedAt *time.Time `json:"reverted_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type ReceiptItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID int64 `gorm:"not null;index" json:"receipt_id"`
	VariantID int64 `gorm:"not null;index" json:"variant_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
	Price     int64 `gorm:"not null" json:"price"`
	Subtotal  int64 `gorm:"not null" json:"subtotal"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
