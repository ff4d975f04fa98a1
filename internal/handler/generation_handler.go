package handler

import (
	"errors"
	"net/http"
	"strconv"

	"llmv-go/internal/dto"
	"llmv-go/internal/middleware"
	"llmv-go/internal/repository"
	"llmv-go/internal/service"
	"llmv-go/internal/utils"
	"llmv-go/pkg/llm_router"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GenerationHandler 文本生成处理器
type GenerationHandler struct {
	genService *service.GenerationService
	selector   *service.SelectorService
	userRepo   *repository.UserRepository
}

// NewGenerationHandler 创建文本生成处理器
func NewGenerationHandler(genService *service.GenerationService, selector *service.SelectorService, userRepo *repository.UserRepository) *GenerationHandler {
	return &GenerationHandler{
		genService: genService,
		selector:   selector,
		userRepo:   userRepo,
	}
}

// Generate 生成文本
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		utils.Unauthorized(c, "用户不存在")
		return
	}

	data, err := h.genService.Generate(c.Request.Context(), user.ID, user.TeamID, &req)
	if err != nil {
		var genErr *llm_router.GenerationError
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFound(c, "题目或生成记录不存在")
		case errors.Is(err, service.ErrModelsExhausted),
			errors.Is(err, service.ErrAttemptInProgress):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrInvalidStateTransition):
			utils.BadRequest(c, "该记录已提交评审, 不能继续生成")
		case errors.Is(err, llm_router.ErrNotConfigured):
			utils.InternalError(c, err.Error())
		case errors.As(err, &genErr):
			// 远程生成失败按原样告知用户, 由用户决定是否重试
			c.JSON(http.StatusOK, utils.Response{
				Success: false,
				Message: "生成失败",
				Data:    dto.GenerateData{Text: genErr.Message},
			})
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, data)
}

// UnusedModels 获取当前用户在某题目上还未尝试的模型
func (h *GenerationHandler) UnusedModels(c *gin.Context) {
	challengeID, err := strconv.ParseUint(c.Param("challenge_id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "无效的题目ID")
		return
	}

	userID, _ := middleware.GetUserID(c)
	unused, err := h.selector.UnusedModels(userID, uint(challengeID))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	names := make([]string, len(unused))
	for i, m := range unused {
		names[i] = m.AnonName
	}

	utils.SuccessResponse(c, dto.UnusedModelsData{
		Models:    names,
		Exhausted: len(names) == 0,
	})
}
