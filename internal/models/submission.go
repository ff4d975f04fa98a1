package models

import (
	"time"
)

// Submission 提交评审标记
// generation_id上的唯一索引保证每条生成记录至多提交一次,
// 并发的重复提交由存储层约束拦截
type Submission struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	GenerationID uint      `gorm:"not null;uniqueIndex" json:"generation_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// TableName 指定表名
func (Submission) TableName() string {
	return "llmv_submissions"
}
