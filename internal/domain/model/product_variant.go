package model

import "time"

// 販売単位のSKU（商品 × 色 × サイズ）。
// Quantityは在庫操作（入荷/注文/調整/返品）経由でのみ書き換える。
type ProductVariant struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	ColorID   int64 `gorm:"not null;index" json:"color_id"`
	SizeID    int64 `gorm:"not null;index" json:"size_id"`
	Price     int64 `gorm:"not null" json:"price"`

	//在庫数。0未満にはならない。
	Quantity int64 `gorm:"not null;default:0" json:"quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
