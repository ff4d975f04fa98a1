package service

import (
	"context"
	"fmt"

	"llmv-go/internal/dto"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/pkg/llm_router"
	"llmv-go/pkg/redis_limiter"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GenerationService 文本生成服务
// 负责挑选或复用模型分配, 调用远程LLM并记录对话轮次
type GenerationService struct {
	challengeRepo *repository.ChallengeRepository
	genRepo       *repository.GenerationRepository
	selector      *SelectorService
	router        *llm_router.Client
	limiter       *redis_limiter.RedisLimiter
	logger        *logrus.Logger
}

// NewGenerationService 创建文本生成服务
// limiter可为nil, 表示不做并发限制
func NewGenerationService(
	challengeRepo *repository.ChallengeRepository,
	genRepo *repository.GenerationRepository,
	selector *SelectorService,
	router *llm_router.Client,
	limiter *redis_limiter.RedisLimiter,
	logger *logrus.Logger,
) *GenerationService {
	return &GenerationService{
		challengeRepo: challengeRepo,
		genRepo:       genRepo,
		selector:      selector,
		router:        router,
		limiter:       limiter,
		logger:        logger,
	}
}

// Generate 为用户生成一段文本
// 远程调用失败时不落任何数据: 不创建记录, 不追加轮次, 状态不变
func (s *GenerationService) Generate(ctx context.Context, userID uint, teamID *uint, req *dto.GenerateRequest) (*dto.GenerateData, error) {
	challenge, err := s.challengeRepo.GetByID(req.ChallengeID)
	if err != nil {
		return nil, err
	}
	// 隐藏题目对用户不存在
	if challenge.State == models.ChallengeStateHidden {
		return nil, gorm.ErrRecordNotFound
	}

	var gen *models.Generation
	var model *models.LlmModel
	var history []llm_router.Message

	if req.GenerationID != nil {
		// 在已有记录上继续对话
		gen, err = s.genRepo.GetByIDWithTurns(*req.GenerationID)
		if err != nil {
			return nil, err
		}
		if gen.UserID != userID {
			// 不泄露他人记录的存在
			return nil, gorm.ErrRecordNotFound
		}
		if gen.ChallengeID != req.ChallengeID {
			return nil, fmt.Errorf("生成记录不属于该题目")
		}
		if gen.Status != models.StatusUnsubmitted {
			return nil, ErrInvalidStateTransition
		}
		model = &gen.Model
		history = buildHistory(gen.Turns)
	} else {
		// 开始新尝试, 随机挑一个未使用的模型
		model, err = s.selector.PickModel(userID, req.ChallengeID)
		if err != nil {
			return nil, err
		}
		if model == nil {
			return nil, ErrModelsExhausted
		}
	}

	// 同一后端模型的并发调用受Redis限制
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx, model.Name); err != nil {
			return nil, fmt.Errorf("获取并发槽位失败: %w", err)
		}
		defer s.limiter.Release(ctx, model.Name)
	}

	routerReq := &llm_router.GenerateRequest{
		UUID:    fmt.Sprintf("%d-%d-%d", userID, req.ChallengeID, model.ID),
		Prompt:  req.Prompt,
		System:  challenge.Preprompt,
		Model:   model.Name,
		History: history,
	}

	text, err := s.router.Generate(ctx, routerReq)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":      userID,
			"challenge_id": req.ChallengeID,
			"model":        model.AnonName,
		}).Errorf("远程生成失败: %v", err)
		return nil, err
	}

	// 新尝试在远程调用成功后才落记录
	if gen == nil {
		gen = &models.Generation{
			UserID:      userID,
			TeamID:      teamID,
			ChallengeID: req.ChallengeID,
			ModelID:     model.ID,
			Status:      models.StatusUnsubmitted,
		}
		if err := s.genRepo.Create(gen); err != nil {
			// 并发的两次新尝试选中了同一模型, 后写入方撞到唯一索引
			if isUniqueViolation(err) {
				return nil, ErrAttemptInProgress
			}
			return nil, fmt.Errorf("创建生成记录失败: %w", err)
		}
	}

	seq, err := s.genRepo.NextSeq(gen.ID)
	if err != nil {
		return nil, fmt.Errorf("计算轮次序号失败: %w", err)
	}
	turn := &models.ChatTurn{
		GenerationID: gen.ID,
		Seq:          seq,
		Prompt:       req.Prompt,
		Response:     text,
	}
	if err := s.genRepo.AppendTurn(turn); err != nil {
		return nil, fmt.Errorf("记录对话轮次失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"challenge_id":  req.ChallengeID,
		"generation_id": gen.ID,
		"model":         model.AnonName,
		"seq":           seq,
	}).Info("生成文本成功")

	return &dto.GenerateData{
		Text:     text,
		ID:       gen.ID,
		Fragment: model.AnonName,
	}, nil
}

// buildHistory 把历史轮次还原成对话消息序列
func buildHistory(turns []models.ChatTurn) []llm_router.Message {
	history := make([]llm_router.Message, 0, len(turns)*2)
	for _, turn := range turns {
		history = append(history,
			llm_router.Message{Role: "user", Content: turn.Prompt},
			llm_router.Message{Role: "assistant", Content: turn.Response},
		)
	}
	return history
}
