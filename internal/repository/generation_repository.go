package repository

import (
	"llmv-go/internal/models"

	"gorm.io/gorm"
)

// GenerationRepository 生成记录数据访问层
type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository 创建生成记录Repository
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Create 创建生成记录
func (r *GenerationRepository) Create(gen *models.Generation) error {
	return r.db.Create(gen).Error
}

// GetByID 根据ID获取生成记录
func (r *GenerationRepository) GetByID(id uint) (*models.Generation, error) {
	var gen models.Generation
	err := r.db.Preload("Model").First(&gen, id).Error
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

// GetByIDWithTurns 根据ID获取生成记录及全部对话轮次
func (r *GenerationRepository) GetByIDWithTurns(id uint) (*models.Generation, error) {
	var gen models.Generation
	err := r.db.Preload("Model").
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		First(&gen, id).Error
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

// UsedModelIDs 获取用户在某题目上已占用的模型ID
// 任何状态的记录都算占用, 未提交的记录说明用户仍在尝试中
func (r *GenerationRepository) UsedModelIDs(userID, challengeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Generation{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Pluck("model_id", &ids).Error
	return ids, err
}

// ListByUserChallenge 获取用户在某题目上的全部生成记录
func (r *GenerationRepository) ListByUserChallenge(userID, challengeID uint) ([]models.Generation, error) {
	var gens []models.Generation
	err := r.db.Preload("Model").
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Order("created_at").
		Find(&gens).Error
	return gens, err
}

// ListByStatus 按状态分页获取生成记录(管理员)
// challengeID为0时不按题目过滤
func (r *GenerationRepository) ListByStatus(status models.GenerationStatus, challengeID uint, offset, limit int) ([]models.Generation, int64, error) {
	var gens []models.Generation
	var total int64

	query := r.db.Model(&models.Generation{}).Where("status = ?", status)
	if challengeID != 0 {
		query = query.Where("challenge_id = ?", challengeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Model").
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&gens).Error
	return gens, total, err
}

// ListSolved 分页获取评审通过的生成记录(管理员)
// 包括正确和特别奖励两种结果
func (r *GenerationRepository) ListSolved(challengeID uint, offset, limit int) ([]models.Generation, int64, error) {
	var gens []models.Generation
	var total int64

	solved := []models.GenerationStatus{models.StatusCorrect, models.StatusAwarded}
	query := r.db.Model(&models.Generation{}).Where("status IN ?", solved)
	if challengeID != 0 {
		query = query.Where("challenge_id = ?", challengeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Model").
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&gens).Error
	return gens, total, err
}

// ListAll 分页获取全部生成记录(管理员)
func (r *GenerationRepository) ListAll(challengeID uint, offset, limit int) ([]models.Generation, int64, error) {
	var gens []models.Generation
	var total int64

	query := r.db.Model(&models.Generation{})
	if challengeID != 0 {
		query = query.Where("challenge_id = ?", challengeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Model").
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&gens).Error
	return gens, total, err
}

// AppendTurn 追加一条对话轮次
func (r *GenerationRepository) AppendTurn(turn *models.ChatTurn) error {
	return r.db.Create(turn).Error
}

// NextSeq 计算生成记录的下一个轮次序号
func (r *GenerationRepository) NextSeq(generationID uint) (int, error) {
	var count int64
	err := r.db.Model(&models.ChatTurn{}).Where("generation_id = ?", generationID).Count(&count).Error
	return int(count) + 1, err
}
