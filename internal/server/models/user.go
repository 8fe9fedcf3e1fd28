package models

import (
	"time"
)

// User 用户信息
type User struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Username   string     `json:"username" gorm:"not null;size:50;uniqueIndex"`
	Password   string     `json:"-" gorm:"not null;size:255"`
	IsAdmin    bool       `json:"is_admin" gorm:"default:false"`
	LastActive *time.Time `json:"last_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PublicView 用户公开视图（注册响应不包含admin标记）
type PublicView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Public 返回用户公开视图
func (u *User) Public() PublicView {
	return PublicView{
		ID:       u.ID,
		Username: u.Username,
	}
}
