package handler

import (
	"errors"
	"strconv"

	"llmv-go/internal/dto"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/internal/service"
	"llmv-go/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 管理员列表页每页条数
const resultsPerPage = 50

// AdminHandler 管理员处理器
type AdminHandler struct {
	genRepo       *repository.GenerationRepository
	challengeRepo *repository.ChallengeRepository
	subRepo       *repository.SubmissionRepository
	registry      *service.RegistryService
	lifecycle     *service.LifecycleService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(genRepo *repository.GenerationRepository, challengeRepo *repository.ChallengeRepository, subRepo *repository.SubmissionRepository, registry *service.RegistryService, lifecycle *service.LifecycleService) *AdminHandler {
	return &AdminHandler{
		genRepo:       genRepo,
		challengeRepo: challengeRepo,
		subRepo:       subRepo,
		registry:      registry,
		lifecycle:     lifecycle,
	}
}

// adminInfos 转换为管理员视图并补上提交时间
func (h *AdminHandler) adminInfos(gens []models.Generation) ([]dto.AdminGenerationInfo, error) {
	ids := make([]uint, len(gens))
	for i, gen := range gens {
		ids[i] = gen.ID
	}
	submittedAt, err := h.subRepo.MapSubmittedAt(ids)
	if err != nil {
		return nil, err
	}
	return toAdminGenerationInfos(gens, submittedAt), nil
}

// pageParams 解析分页和题目过滤参数
func pageParams(c *gin.Context) (page int, offset int, challengeID uint) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	offset = resultsPerPage * (page - 1)

	cid, _ := strconv.ParseUint(c.DefaultQuery("challenge_id", "0"), 10, 32)
	return page, offset, uint(cid)
}

// pageCount 计算总页数
func pageCount(total int64) int {
	count := int(total / resultsPerPage)
	if total%resultsPerPage > 0 {
		count++
	}
	return count
}

// PendingSubmissions 待评审队列
func (h *AdminHandler) PendingSubmissions(c *gin.Context) {
	page, offset, challengeID := pageParams(c)

	gens, total, err := h.genRepo.ListByStatus(models.StatusPending, challengeID, offset, resultsPerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	infos, err := h.adminInfos(gens)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, infos, total, page, pageCount(total))
}

// SolvedSubmissions 已通过的提交列表
func (h *AdminHandler) SolvedSubmissions(c *gin.Context) {
	page, offset, challengeID := pageParams(c)

	gens, total, err := h.genRepo.ListSolved(challengeID, offset, resultsPerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	infos, err := h.adminInfos(gens)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, infos, total, page, pageCount(total))
}

// AllGenerations 全部生成记录
func (h *AdminHandler) AllGenerations(c *gin.Context) {
	page, offset, challengeID := pageParams(c)

	gens, total, err := h.genRepo.ListAll(challengeID, offset, resultsPerPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	infos, err := h.adminInfos(gens)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, infos, total, page, pageCount(total))
}

// ListChallenges 全部题目(含隐藏和系统提示词)
func (h *AdminHandler) ListChallenges(c *gin.Context) {
	page, offset, _ := pageParams(c)

	challenges, total, err := h.challengeRepo.List(offset, resultsPerPage)
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
			State:       string(ch.State),
			Preprompt:   ch.Preprompt,
		}
	}

	utils.PaginatedResponse(c, resp, total, page, pageCount(total))
}

// ListModels 模型注册表, 展示真实模型与匿名代号的对应关系
func (h *AdminHandler) ListModels(c *gin.Context) {
	list, err := h.registry.ListModels()
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	utils.SuccessResponse(c, list)
}

// VerifySubmission 评审一条pending记录
// status路径参数只接受solve/award/fail, award的分值从value查询参数读取
func (h *AdminHandler) VerifySubmission(c *gin.Context) {
	generationID, err := strconv.ParseUint(c.Param("generation_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的生成记录ID")
		return
	}

	status := c.Param("status")
	awardValue, _ := strconv.Atoi(c.DefaultQuery("value", "0"))
	if err := utils.ValidateStruct(&dto.VerifyRequest{Status: status, Value: awardValue}); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.lifecycle.Verify(uint(generationID), status, awardValue); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFound(c, "生成记录不存在")
		case errors.Is(err, service.ErrInvalidVerifyStatus),
			errors.Is(err, service.ErrInvalidStateTransition):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.SuccessWithMessage(c, "评审完成", gin.H{"id": generationID, "status": status})
}
