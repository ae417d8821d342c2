package model

import "time"

// ImageProduct はSKUに紐づく画像レコード。
// URLの保持のみで、ファイル本体の保存は外部（CDN等）に任せる。
type ImageProduct struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VariantID   int64     `gorm:"index;not null" json:"variant_id"`
	URL         string    `gorm:"column:url;type:varchar(2048);not null" json:"url"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
