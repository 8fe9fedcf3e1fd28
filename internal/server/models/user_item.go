package models

import (
	"time"
)

// UserItem 用户收集记录，(user_id, item_id)唯一
type UserItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_item"`
	ItemID       uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_user_item"`
	Collected    bool      `json:"collected" gorm:"default:false"`
	VolumeNumber int       `json:"volume_number" gorm:"default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
