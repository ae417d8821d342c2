package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentBanking PaymentMethod = "Banking"
)

type Order struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64 `gorm:"index" json:"user_id"`
	OrderCode string `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_code"`

	//注文時点の宛先スナップショット
	CustomerName    string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail   string `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone   string `gorm:"type:varchar(50);not null" json:"customer_phone"`
	CustomerAddress string `gorm:"type:varchar(1000);not null" json:"customer_address"`

	Note          string        `gorm:"type:text" json:"note"`
	TotalPrice    int64         `gorm:"not null" json:"total_price"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
