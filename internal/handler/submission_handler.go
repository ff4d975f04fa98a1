package handler

import (
	"errors"
	"strconv"

	"llmv-go/internal/dto"
	"llmv-go/internal/middleware"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/internal/service"
	"llmv-go/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmissionHandler 用户提交处理器
type SubmissionHandler struct {
	genRepo       *repository.GenerationRepository
	challengeRepo *repository.ChallengeRepository
	scoringRepo   *repository.ScoringRepository
	lifecycle     *service.LifecycleService
}

// NewSubmissionHandler 创建提交处理器
func NewSubmissionHandler(genRepo *repository.GenerationRepository, challengeRepo *repository.ChallengeRepository, scoringRepo *repository.ScoringRepository, lifecycle *service.LifecycleService) *SubmissionHandler {
	return &SubmissionHandler{
		genRepo:       genRepo,
		challengeRepo: challengeRepo,
		scoringRepo:   scoringRepo,
		lifecycle:     lifecycle,
	}
}

// ListForChallenge 获取当前用户在某题目上的提交, 按状态分组
func (h *SubmissionHandler) ListForChallenge(c *gin.Context) {
	challengeID, err := strconv.ParseUint(c.Param("challenge_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的题目ID")
		return
	}

	if _, err := h.challengeRepo.GetByID(uint(challengeID)); err != nil {
		utils.NotFound(c, "题目不存在")
		return
	}

	userID, _ := middleware.GetUserID(c)
	gens, err := h.genRepo.ListByUserChallenge(userID, uint(challengeID))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	data := dto.SubmissionsData{
		Pending:   []dto.GenerationInfo{},
		Correct:   []dto.GenerationInfo{},
		Awarded:   []dto.GenerationInfo{},
		Incorrect: []dto.GenerationInfo{},
	}
	for _, gen := range gens {
		info := toGenerationInfo(gen)
		switch gen.Status {
		case models.StatusPending:
			data.Pending = append(data.Pending, info)
		case models.StatusCorrect:
			data.Correct = append(data.Correct, info)
		case models.StatusAwarded:
			data.Awarded = append(data.Awarded, info)
		case models.StatusIncorrect:
			data.Incorrect = append(data.Incorrect, info)
		}
		// unsubmitted的记录还不是提交, 不在此列出
	}

	utils.SuccessResponse(c, data)
}

// SubmitForReview 将生成记录提交给管理员评审
func (h *SubmissionHandler) SubmitForReview(c *gin.Context) {
	generationID, err := strconv.ParseUint(c.Param("generation_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的生成记录ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.lifecycle.SubmitForReview(userID, uint(generationID)); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFound(c, "生成记录不存在")
		case errors.Is(err, service.ErrDuplicateSubmission):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.SuccessWithMessage(c, "已提交评审", gin.H{"id": generationID})
}

// MyAwards 获取当前用户的奖励记录
func (h *SubmissionHandler) MyAwards(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	awards, err := h.scoringRepo.ListAwardsByUser(userID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	infos := make([]dto.AwardInfo, len(awards))
	for i, a := range awards {
		infos[i] = dto.AwardInfo{
			Name:        a.Name,
			Description: a.Description,
			Value:       a.Value,
			Category:    a.Category,
			Date:        a.Date.Format(timeLayout),
		}
	}

	utils.SuccessResponse(c, infos)
}
