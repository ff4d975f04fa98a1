package service

import (
	"fmt"

	"llmv-go/internal/models"
	"llmv-go/internal/repository"

	"github.com/sirupsen/logrus"
)

// anonNamePool 固定的匿名代号池
// 用神话代号隐藏真实模型身份, 避免评审时的模型偏见
// 按池内顺序分配, 顺序不可调整, 否则已有环境重启后代号会错位
var anonNamePool = []string{
	"Athena",
	"Hermes",
	"Apollo",
	"Artemis",
	"Poseidon",
	"Hades",
	"Demeter",
	"Hephaestus",
	"Persephone",
	"Hyperion",
	"Selene",
	"Prometheus",
}

// RegistryService 模型注册表服务
type RegistryService struct {
	modelRepo *repository.LlmModelRepository
	logger    *logrus.Logger
}

// NewRegistryService 创建模型注册表服务
func NewRegistryService(modelRepo *repository.LlmModelRepository, logger *logrus.Logger) *RegistryService {
	return &RegistryService{
		modelRepo: modelRepo,
		logger:    logger,
	}
}

// EnsureSeeded 按真实模型列表补齐注册表
// 幂等: 已注册的模型跳过, 新模型按池内顺序取下一个未占用的匿名代号
func (s *RegistryService) EnsureSeeded(canonical []string) error {
	if len(canonical) > len(anonNamePool) {
		return fmt.Errorf("%w: 模型数%d, 代号池%d", ErrNamePoolTooSmall, len(canonical), len(anonNamePool))
	}

	usedNames, err := s.modelRepo.ListAnonNames()
	if err != nil {
		return fmt.Errorf("查询已占用代号失败: %w", err)
	}
	used := make(map[string]bool, len(usedNames))
	for _, name := range usedNames {
		used[name] = true
	}

	for _, name := range canonical {
		exists, err := s.modelRepo.ExistsByName(name)
		if err != nil {
			return fmt.Errorf("检查模型%s失败: %w", name, err)
		}
		if exists {
			continue
		}

		anon := nextFreeAnonName(used)
		if anon == "" {
			// 池已被历史数据占满
			return fmt.Errorf("%w: 没有可用代号分配给模型%s", ErrNamePoolTooSmall, name)
		}

		model := &models.LlmModel{Name: name, AnonName: anon}
		if err := s.modelRepo.Create(model); err != nil {
			return fmt.Errorf("注册模型%s失败: %w", name, err)
		}
		used[anon] = true
		s.logger.WithFields(logrus.Fields{
			"model":     name,
			"anon_name": anon,
		}).Info("注册新模型")
	}

	return nil
}

// ListModels 获取全部已注册模型
func (s *RegistryService) ListModels() ([]models.LlmModel, error) {
	return s.modelRepo.ListAll()
}

// nextFreeAnonName 按池内顺序取第一个未占用的代号
func nextFreeAnonName(used map[string]bool) string {
	for _, anon := range anonNamePool {
		if !used[anon] {
			return anon
		}
	}
	return ""
}
