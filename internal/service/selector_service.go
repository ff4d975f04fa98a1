package service

import (
	"fmt"
	"math/rand"

	"llmv-go/internal/models"
	"llmv-go/internal/repository"
)

// SelectorService 模型分配服务
// 保证用户在一道题目上每个模型只尝试一次
type SelectorService struct {
	modelRepo *repository.LlmModelRepository
	genRepo   *repository.GenerationRepository
}

// NewSelectorService 创建模型分配服务
func NewSelectorService(modelRepo *repository.LlmModelRepository, genRepo *repository.GenerationRepository) *SelectorService {
	return &SelectorService{
		modelRepo: modelRepo,
		genRepo:   genRepo,
	}
}

// UnusedModels 获取用户在某题目上还未使用过的模型
// 任何状态的生成记录都算占用; 返回空切片表示该用户已完成此题全部模型,
// 调用方应视为题目完成而不是错误
func (s *SelectorService) UnusedModels(userID, challengeID uint) ([]models.LlmModel, error) {
	all, err := s.modelRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("查询模型列表失败: %w", err)
	}

	usedIDs, err := s.genRepo.UsedModelIDs(userID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("查询已占用模型失败: %w", err)
	}
	used := make(map[uint]bool, len(usedIDs))
	for _, id := range usedIDs {
		used[id] = true
	}

	unused := make([]models.LlmModel, 0, len(all))
	for _, m := range all {
		if !used[m.ID] {
			unused = append(unused, m)
		}
	}
	return unused, nil
}

// PickModel 从未使用的模型中均匀随机选一个开始新尝试
// 全部用完时返回nil, 不是错误
func (s *SelectorService) PickModel(userID, challengeID uint) (*models.LlmModel, error) {
	unused, err := s.UnusedModels(userID, challengeID)
	if err != nil {
		return nil, err
	}
	if len(unused) == 0 {
		return nil, nil
	}

	picked := unused[rand.Intn(len(unused))]
	return &picked, nil
}
