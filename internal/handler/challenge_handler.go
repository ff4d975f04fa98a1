package handler

import (
	"errors"
	"strconv"

	"llmv-go/internal/dto"
	"llmv-go/internal/middleware"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ChallengeHandler 题目处理器
type ChallengeHandler struct {
	challengeRepo *repository.ChallengeRepository
	scoringRepo   *repository.ScoringRepository
}

// NewChallengeHandler 创建题目处理器
func NewChallengeHandler(challengeRepo *repository.ChallengeRepository, scoringRepo *repository.ScoringRepository) *ChallengeHandler {
	return &ChallengeHandler{
		challengeRepo: challengeRepo,
		scoringRepo:   scoringRepo,
	}
}

// List 获取可见题目列表
func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.challengeRepo.ListVisible()
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	ids := make([]uint, len(challenges))
	for i, ch := range challenges {
		ids[i] = ch.ID
	}
	solveCounts, err := h.scoringRepo.MapSolveCounts(ids)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	userID, _ := middleware.GetUserID(c)
	solvedSet, err := h.scoringRepo.MapSolvedByUser(userID, ids)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	resp := make([]dto.ChallengeResponse, len(challenges))
	for i, ch := range challenges {
		resp[i] = dto.ChallengeResponse{
			ID:          ch.ID,
			Name:        ch.Name,
			Description: ch.Description,
			Value:       ch.Value,
			Category:    ch.Category,
			Solves:      solveCounts[ch.ID],
			Solved:      solvedSet[ch.ID],
		}
	}

	utils.SuccessResponse(c, resp)
}

// Get 获取题目详情
func (h *ChallengeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("challenge_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的题目ID")
		return
	}

	challenge, err := h.challengeRepo.GetByID(uint(id))
	if err != nil {
		utils.NotFound(c, "题目不存在")
		return
	}

	// 隐藏题目对普通用户不可见
	if challenge.State == models.ChallengeStateHidden && !middleware.IsAdmin(c) {
		utils.NotFound(c, "题目不存在")
		return
	}

	solves, err := h.scoringRepo.CountSolvesByChallenge(challenge.ID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	userID, _ := middleware.GetUserID(c)
	solved, err := h.scoringRepo.HasSolved(userID, challenge.ID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	resp := dto.ChallengeResponse{
		ID:          challenge.ID,
		Name:        challenge.Name,
		Description: challenge.Description,
		Value:       challenge.Value,
		Category:    challenge.Category,
		Solves:      solves,
		Solved:      solved,
	}
	// 系统提示词只给管理员看
	if middleware.IsAdmin(c) {
		resp.State = string(challenge.State)
		resp.Preprompt = challenge.Preprompt
	}

	utils.SuccessResponse(c, resp)
}

// Create 创建题目(管理员)
// 新题目默认可见
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req dto.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	challenge := &models.Challenge{
		Name:        req.Name,
		Description: req.Description,
		Preprompt:   req.Preprompt,
		Value:       req.Value,
		Category:    req.Category,
		State:       models.ChallengeStateVisible,
	}

	if err := h.challengeRepo.Create(challenge); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "题目创建成功", challenge)
}

// Update 更新题目(管理员)
func (h *ChallengeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("challenge_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的题目ID")
		return
	}

	challenge, err := h.challengeRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "题目不存在")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	var req dto.UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Name != nil {
		challenge.Name = *req.Name
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Preprompt != nil {
		challenge.Preprompt = *req.Preprompt
	}
	if req.Value != nil {
		challenge.Value = *req.Value
	}
	if req.Category != nil {
		challenge.Category = *req.Category
	}
	if req.State != nil {
		challenge.State = models.ChallengeState(*req.State)
	}

	if err := h.challengeRepo.Update(challenge); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "题目更新成功", challenge)
}
