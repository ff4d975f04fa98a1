package models

import (
	"time"
)

// 宿主平台通用计分表的本地等价物
// 终态评审时与生成记录在同一事务中写入

// Solve 判定为正确时写入的解题记录
type Solve struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	TeamID       *uint     `gorm:"index" json:"team_id"`
	ChallengeID  uint      `gorm:"not null;index" json:"challenge_id"`
	GenerationID uint      `gorm:"not null" json:"generation_id"`
	Date         time.Time `json:"date"`
}

// TableName 指定表名
func (Solve) TableName() string {
	return "solves"
}

// Award 特别奖励记录, 分值由管理员指定
type Award struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	TeamID      *uint     `gorm:"index" json:"team_id"`
	Name        string    `gorm:"size:80" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Value       int       `gorm:"not null;default:0" json:"value"`
	Category    string    `gorm:"size:80" json:"category"`
	Date        time.Time `json:"date"`
}

// TableName 指定表名
func (Award) TableName() string {
	return "awards"
}

// Fail 判定为错误时写入的失败记录, 不计分
type Fail struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	TeamID       *uint     `gorm:"index" json:"team_id"`
	ChallengeID  uint      `gorm:"not null;index" json:"challenge_id"`
	GenerationID uint      `gorm:"not null" json:"generation_id"`
	Date         time.Time `json:"date"`
}

// TableName 指定表名
func (Fail) TableName() string {
	return "fails"
}
