package repository

import (
	"time"

	"llmv-go/internal/models"

	"gorm.io/gorm"
)

// SubmissionRepository 提交标记数据访问层
// 标记写入在生命周期事务内完成, 这里只提供查询
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建提交标记Repository
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// MapSubmittedAt 批量查询生成记录的提交时间
func (r *SubmissionRepository) MapSubmittedAt(generationIDs []uint) (map[uint]time.Time, error) {
	result := make(map[uint]time.Time, len(generationIDs))
	if len(generationIDs) == 0 {
		return result, nil
	}

	var subs []models.Submission
	err := r.db.Where("generation_id IN ?", generationIDs).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		result[sub.GenerationID] = sub.SubmittedAt
	}
	return result, nil
}
