package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"llmv-go/internal/dto"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/internal/service"
	"llmv-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newHandlerFixture 搭建DB和测试路由, fakeAuth注入固定用户身份
func newHandlerFixture(t *testing.T, userID uint) (*gin.Engine, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	testLogger := logrus.New()
	testLogger.SetOutput(io.Discard)

	genRepo := repository.NewGenerationRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	subRepo := repository.NewSubmissionRepository(db)
	scoringRepo := repository.NewScoringRepository(db)
	modelRepo := repository.NewLlmModelRepository(db)
	registry := service.NewRegistryService(modelRepo, testLogger)
	lifecycle := service.NewLifecycleService(db, testLogger)

	submissionHandler := NewSubmissionHandler(genRepo, challengeRepo, scoringRepo, lifecycle)
	adminHandler := NewAdminHandler(genRepo, challengeRepo, subRepo, registry, lifecycle)
	challengeHandler := NewChallengeHandler(challengeRepo, scoringRepo)

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
	r.GET("/api/challenges", fakeAuth, challengeHandler.List)
	r.GET("/api/submissions/:challenge_id", fakeAuth, submissionHandler.ListForChallenge)
	r.POST("/api/submissions/:generation_id", fakeAuth, submissionHandler.SubmitForReview)
	r.GET("/api/admin/submissions/pending", adminHandler.PendingSubmissions)
	r.POST("/api/admin/verify_submissions/:generation_id/:status", adminHandler.VerifySubmission)

	return r, db
}

func seedPendingGeneration(t *testing.T, db *gorm.DB, userID uint) (*models.Challenge, *models.Generation) {
	t.Helper()

	ch := &models.Challenge{Name: fmt.Sprintf("challenge-%d", userID), Value: 100, State: models.ChallengeStateVisible}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("插入测试题目失败: %v", err)
	}
	m := &models.LlmModel{Name: fmt.Sprintf("model-%d", userID), AnonName: fmt.Sprintf("Anon-%d", userID)}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("插入测试模型失败: %v", err)
	}
	gen := &models.Generation{UserID: userID, ChallengeID: ch.ID, ModelID: m.ID, Status: models.StatusPending}
	if err := db.Create(gen).Error; err != nil {
		t.Fatalf("插入测试生成记录失败: %v", err)
	}
	return ch, gen
}

func TestChallengeListSolveCounts(t *testing.T) {
	r, db := newHandlerFixture(t, 1)

	ch1 := &models.Challenge{Name: "solved-twice", Value: 100, State: models.ChallengeStateVisible}
	ch2 := &models.Challenge{Name: "unsolved", Value: 200, State: models.ChallengeStateVisible}
	db.Create(ch1)
	db.Create(ch2)
	db.Create(&models.Solve{UserID: 1, ChallengeID: ch1.ID, GenerationID: 1})
	db.Create(&models.Solve{UserID: 2, ChallengeID: ch1.ID, GenerationID: 2})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/challenges", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                    `json:"success"`
		Data    []dto.ChallengeResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("题目数量错误: 期望2, 实际%d", len(resp.Data))
	}

	if resp.Data[0].Solves != 2 {
		t.Errorf("解题人数错误: 期望2, 实际%d", resp.Data[0].Solves)
	}
	if !resp.Data[0].Solved {
		t.Error("当前用户已解出的题目应标记solved")
	}
	if resp.Data[1].Solves != 0 || resp.Data[1].Solved {
		t.Errorf("无人解出的题目计数错误: solves=%d, solved=%v", resp.Data[1].Solves, resp.Data[1].Solved)
	}
}

func TestListForChallengeGroupsByStatus(t *testing.T) {
	r, db := newHandlerFixture(t, 1)

	ch := &models.Challenge{Name: "group-test", Value: 100, State: models.ChallengeStateVisible}
	db.Create(ch)
	statuses := []models.GenerationStatus{
		models.StatusUnsubmitted,
		models.StatusPending,
		models.StatusCorrect,
		models.StatusAwarded,
		models.StatusIncorrect,
	}
	for i, status := range statuses {
		m := &models.LlmModel{Name: fmt.Sprintf("model-%d", i), AnonName: fmt.Sprintf("Anon-%d", i)}
		db.Create(m)
		db.Create(&models.Generation{UserID: 1, ChallengeID: ch.ID, ModelID: m.ID, Status: status})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/submissions/%d", ch.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                `json:"success"`
		Data    dto.SubmissionsData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	// unsubmitted的记录还不是提交, 不出现在任何分组
	if len(resp.Data.Pending) != 1 || len(resp.Data.Correct) != 1 ||
		len(resp.Data.Awarded) != 1 || len(resp.Data.Incorrect) != 1 {
		t.Errorf("分组数量错误: pending=%d, correct=%d, awarded=%d, incorrect=%d",
			len(resp.Data.Pending), len(resp.Data.Correct), len(resp.Data.Awarded), len(resp.Data.Incorrect))
	}
}

func TestSubmitForReviewEndpoint(t *testing.T) {
	r, db := newHandlerFixture(t, 1)

	ch := &models.Challenge{Name: "submit-endpoint", Value: 100, State: models.ChallengeStateVisible}
	db.Create(ch)
	m := &models.LlmModel{Name: "huggingface", AnonName: "Athena"}
	db.Create(m)
	gen := &models.Generation{UserID: 1, ChallengeID: ch.ID, ModelID: m.ID, Status: models.StatusUnsubmitted}
	db.Create(gen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/submissions/%d", gen.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d, body=%s", w.Code, w.Body.String())
	}

	// 重复提交返回400
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", fmt.Sprintf("/api/submissions/%d", gen.ID), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复提交状态码错误: %d", w.Code)
	}
}

func TestVerifySubmissionEndpoint(t *testing.T) {
	r, db := newHandlerFixture(t, 1)
	ch, gen := seedPendingGeneration(t, db, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/admin/verify_submissions/%d/solve", gen.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d, body=%s", w.Code, w.Body.String())
	}

	var got models.Generation
	db.First(&got, gen.ID)
	if got.Status != models.StatusCorrect {
		t.Errorf("评审后状态错误: %s", got.Status)
	}
	if got.Points != ch.Value {
		t.Errorf("评审后分值错误: %d", got.Points)
	}
}

func TestVerifySubmissionAwardValue(t *testing.T) {
	r, db := newHandlerFixture(t, 1)
	_, gen := seedPendingGeneration(t, db, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/admin/verify_submissions/%d/award?value=66", gen.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d, body=%s", w.Code, w.Body.String())
	}

	var got models.Generation
	db.First(&got, gen.ID)
	if got.Status != models.StatusAwarded {
		t.Errorf("评审后状态错误: %s", got.Status)
	}
	if got.Points != 66 {
		t.Errorf("奖励分值错误: %d", got.Points)
	}
}

func TestVerifySubmissionInvalidStatus(t *testing.T) {
	r, db := newHandlerFixture(t, 1)
	_, gen := seedPendingGeneration(t, db, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/admin/verify_submissions/%d/delete", gen.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法动作状态码错误: %d", w.Code)
	}

	var got models.Generation
	db.First(&got, gen.ID)
	if got.Status != models.StatusPending {
		t.Errorf("非法动作不应改变状态: %s", got.Status)
	}
}

func TestVerifySubmissionNotFound(t *testing.T) {
	r, _ := newHandlerFixture(t, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/verify_submissions/9999/solve", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("不存在的记录状态码错误: %d", w.Code)
	}
}

func TestPendingSubmissionsPagination(t *testing.T) {
	r, db := newHandlerFixture(t, 1)

	ch := &models.Challenge{Name: "pagination-test", Value: 100, State: models.ChallengeStateVisible}
	db.Create(ch)
	for i := 0; i < resultsPerPage+3; i++ {
		m := &models.LlmModel{Name: fmt.Sprintf("model-%d", i), AnonName: fmt.Sprintf("Anon-%d", i)}
		db.Create(m)
		db.Create(&models.Generation{UserID: uint(i + 1), ChallengeID: ch.ID, ModelID: m.ID, Status: models.StatusPending})
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/submissions/pending?page=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d, body=%s", w.Code, w.Body.String())
	}

	var resp utils.PaginationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Total != int64(resultsPerPage+3) {
		t.Errorf("总数错误: %d", resp.Total)
	}
	if resp.Page != 2 {
		t.Errorf("页码错误: %d", resp.Page)
	}
	if resp.PageCount != 2 {
		t.Errorf("总页数错误: %d", resp.PageCount)
	}

	items, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("响应数据类型错误: %T", resp.Data)
	}
	if len(items) != 3 {
		t.Errorf("第二页条数错误: 期望3, 实际%d", len(items))
	}
}
