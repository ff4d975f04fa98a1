package models

import (
	"time"
)

// User 用户模型(宿主平台账户的本地存根)
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	TeamID       *uint     `gorm:"index" json:"team_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联
	Generations []Generation `gorm:"foreignKey:UserID" json:"generations,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
