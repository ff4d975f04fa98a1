package models

import (
	"time"
)

// LlmModel 后端LLM模型注册表
// Name是真实模型标识, AnonName是展示给用户的匿名代号,
// 用于避免评审时对特定模型产生偏见
type LlmModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:80;not null" json:"name"`
	AnonName  string    `gorm:"uniqueIndex;size:80;not null" json:"anon_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (LlmModel) TableName() string {
	return "llmv_models"
}
