package router

import (
	"llmv-go/internal/config"
	"llmv-go/internal/handler"
	"llmv-go/internal/middleware"
	"llmv-go/internal/repository"
	"llmv-go/internal/service"
	"llmv-go/internal/utils"
	"llmv-go/pkg/llm_router"
	"llmv-go/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "LLM人工判题插件 API",
			"version": "1.0.0",
		})
	})

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	modelRepo := repository.NewLlmModelRepository(db)
	genRepo := repository.NewGenerationRepository(db)
	subRepo := repository.NewSubmissionRepository(db)
	scoringRepo := repository.NewScoringRepository(db)

	// 初始化LLM路由客户端和并发限制器
	routerClient := llm_router.NewClient(cfg.Router.URL, cfg.Router.Token, cfg.Router.GetTimeout(), cfg.Router.MaxRetries)
	var limiter *redis_limiter.RedisLimiter
	if redisClient != nil {
		limiter = redis_limiter.NewRedisLimiter(redisClient, logger, cfg.Router.MaxConcurrency, "llmv:concurrency:", cfg.Router.GetTimeout()*2)
	}

	// 初始化Service
	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	registry := service.NewRegistryService(modelRepo, logger)
	selector := service.NewSelectorService(modelRepo, genRepo)
	genService := service.NewGenerationService(challengeRepo, genRepo, selector, routerClient, limiter, logger)
	lifecycle := service.NewLifecycleService(db, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	challengeHandler := handler.NewChallengeHandler(challengeRepo, scoringRepo)
	genHandler := handler.NewGenerationHandler(genService, selector, userRepo)
	submissionHandler := handler.NewSubmissionHandler(genRepo, challengeRepo, scoringRepo, lifecycle)
	adminHandler := handler.NewAdminHandler(genRepo, challengeRepo, subRepo, registry, lifecycle)

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager))
		{
			// 用户信息
			authorized.GET("/me", authHandler.GetMe)

			// 题目
			authorized.GET("/challenges", challengeHandler.List)
			authorized.GET("/challenges/:challenge_id", challengeHandler.Get)

			// 文本生成
			authorized.POST("/generate", genHandler.Generate)
			authorized.GET("/models/:challenge_id", genHandler.UnusedModels)

			// 提交与奖励
			authorized.GET("/submissions/:challenge_id", submissionHandler.ListForChallenge)
			authorized.POST("/submissions/:generation_id", submissionHandler.SubmitForReview)
			authorized.GET("/awards", submissionHandler.MyAwards)

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.POST("/challenges", challengeHandler.Create)
				adminGroup.PUT("/challenges/:challenge_id", challengeHandler.Update)
				adminGroup.GET("/challenges", adminHandler.ListChallenges)

				adminGroup.GET("/models", adminHandler.ListModels)
				adminGroup.GET("/submissions/pending", adminHandler.PendingSubmissions)
				adminGroup.GET("/submissions/solved", adminHandler.SolvedSubmissions)
				adminGroup.GET("/generations", adminHandler.AllGenerations)

				adminGroup.POST("/verify_submissions/:generation_id/:status", adminHandler.VerifySubmission)
			}
		}
	}

	return r
}
