package repository

import (
	"llmv-go/internal/models"

	"gorm.io/gorm"
)

// LlmModelRepository 模型注册表数据访问层
type LlmModelRepository struct {
	db *gorm.DB
}

// NewLlmModelRepository 创建模型Repository
func NewLlmModelRepository(db *gorm.DB) *LlmModelRepository {
	return &LlmModelRepository{db: db}
}

// Create 创建模型
func (r *LlmModelRepository) Create(model *models.LlmModel) error {
	return r.db.Create(model).Error
}

// ExistsByName 检查真实模型名是否已注册
func (r *LlmModelRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.LlmModel{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// ListAll 获取全部模型, 按ID排序
func (r *LlmModelRepository) ListAll() ([]models.LlmModel, error) {
	var list []models.LlmModel
	err := r.db.Order("id").Find(&list).Error
	return list, err
}

// ListAnonNames 获取已占用的匿名代号
func (r *LlmModelRepository) ListAnonNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.LlmModel{}).Pluck("anon_name", &names).Error
	return names, err
}
