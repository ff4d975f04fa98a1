package models

import (
	"time"
)

// GenerationStatus 生成记录状态
type GenerationStatus string

const (
	// StatusUnsubmitted 初始状态, 用户还在尝试
	StatusUnsubmitted GenerationStatus = "unsubmitted"
	// StatusPending 已提交, 等待管理员评审
	StatusPending GenerationStatus = "pending"
	// StatusCorrect 评审通过
	StatusCorrect GenerationStatus = "correct"
	// StatusIncorrect 评审未通过
	StatusIncorrect GenerationStatus = "incorrect"
	// StatusAwarded 特别奖励
	StatusAwarded GenerationStatus = "awarded"
)

// IsTerminal 是否为终态, 终态记录不允许再次流转
func (s GenerationStatus) IsTerminal() bool {
	return s == StatusCorrect || s == StatusIncorrect || s == StatusAwarded
}

// Generation 生成记录: 一个用户在一道题目上用一个模型的一次完整尝试
// 同一(user, challenge)对每个模型至多一条记录, 记录只流转不删除
type Generation struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	UserID      uint             `gorm:"not null;index;uniqueIndex:idx_user_chal_model" json:"user_id"`
	TeamID      *uint            `gorm:"index" json:"team_id"`
	ChallengeID uint             `gorm:"not null;index;uniqueIndex:idx_user_chal_model" json:"challenge_id"`
	ModelID     uint             `gorm:"not null;uniqueIndex:idx_user_chal_model" json:"model_id"`
	Status      GenerationStatus `gorm:"size:20;default:'unsubmitted'" json:"status"`
	Points      int              `gorm:"default:0" json:"points"`
	CreatedAt   time.Time        `json:"created_at"`

	// 关联
	Model LlmModel   `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Turns []ChatTurn `gorm:"foreignKey:GenerationID" json:"turns,omitempty"`
}

// TableName 指定表名
func (Generation) TableName() string {
	return "llmv_generations"
}

// ChatTurn 一次请求/响应对话轮次, 只追加不修改
// 同一生成记录的全部轮次按Seq排序, 作为下一次远程调用的上下文历史
type ChatTurn struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	GenerationID uint      `gorm:"not null;index" json:"generation_id"`
	Seq          int       `gorm:"not null" json:"seq"`
	Prompt       string    `gorm:"type:text;not null" json:"prompt"`
	Response     string    `gorm:"type:text" json:"response"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (ChatTurn) TableName() string {
	return "llmv_chat_turns"
}
