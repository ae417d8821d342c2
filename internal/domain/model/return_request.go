package model

import "time"

type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
	ReturnStatusRefunded ReturnStatus = "refunded"
)

// 返品申請。approvedへの遷移時に一度だけ在庫を戻す。
type ReturnRequest struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64  `gorm:"not null;index" json:"order_id"`
	VariantID int64  `gorm:"not null;index" json:"variant_id"`
	UserID    *int64 `gorm:"index" json:"user_id"`

	Quantity    int64        `gorm:"not null" json:"quantity"`
	Reason      string       `gorm:"type:text" json:"reason"`
	RequestedBy string       `gorm:"type:varchar(255)" json:"requested_by"`
	Status      ReturnStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminNote   string       `gorm:"type:text" json:"admin_note"`

	//在庫戻しを反映済みか（approved二重処理の防止）
	Processed bool `gorm:"not null;default:false" json:"processed"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
