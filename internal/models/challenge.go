package models

import (
	"time"
)

// ChallengeState 题目可见状态
type ChallengeState string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"
)

// Challenge LLM人工判题题目
type Challenge struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Preprompt   string         `gorm:"type:text" json:"preprompt"`
	Value       int            `gorm:"not null;default:0" json:"value"`
	Category    string         `gorm:"size:80" json:"category"`
	State       ChallengeState `gorm:"size:20;default:'visible'" json:"state"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (Challenge) TableName() string {
	return "challenges"
}
