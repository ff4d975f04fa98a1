package repository

import (
	"llmv-go/internal/models"

	"gorm.io/gorm"
)

// ChallengeRepository 题目数据访问层
type ChallengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository 创建题目Repository
func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// Create 创建题目
func (r *ChallengeRepository) Create(challenge *models.Challenge) error {
	return r.db.Create(challenge).Error
}

// GetByID 根据ID获取题目
func (r *ChallengeRepository) GetByID(id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.First(&challenge, id).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Update 更新题目
func (r *ChallengeRepository) Update(challenge *models.Challenge) error {
	return r.db.Save(challenge).Error
}

// ListVisible 获取可见题目列表
func (r *ChallengeRepository) ListVisible() ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := r.db.Where("state = ?", models.ChallengeStateVisible).Order("id").Find(&challenges).Error
	return challenges, err
}

// List 获取题目列表(管理员, 分页)
func (r *ChallengeRepository) List(offset, limit int) ([]models.Challenge, int64, error) {
	var challenges []models.Challenge
	var total int64

	if err := r.db.Model(&models.Challenge{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("id DESC").Offset(offset).Limit(limit).Find(&challenges).Error
	return challenges, total, err
}
