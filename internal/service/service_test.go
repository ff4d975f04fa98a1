package service

import (
	"io"
	"path/filepath"
	"testing"

	"llmv-go/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建独立的临时sqlite数据库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// newTestLogger 创建丢弃输出的日志器
func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// seedChallenge 插入一道可见题目
func seedChallenge(t *testing.T, db *gorm.DB, name string, value int) *models.Challenge {
	t.Helper()

	ch := &models.Challenge{
		Name:      name,
		Preprompt: "你是一个有帮助的助手",
		Value:     value,
		Category:  "llm",
		State:     models.ChallengeStateVisible,
	}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("插入测试题目失败: %v", err)
	}
	return ch
}

// seedModel 插入一个已注册模型
func seedModel(t *testing.T, db *gorm.DB, name, anonName string) *models.LlmModel {
	t.Helper()

	m := &models.LlmModel{Name: name, AnonName: anonName}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("插入测试模型失败: %v", err)
	}
	return m
}

// seedGeneration 插入一条指定状态的生成记录
func seedGeneration(t *testing.T, db *gorm.DB, userID, challengeID, modelID uint, status models.GenerationStatus) *models.Generation {
	t.Helper()

	gen := &models.Generation{
		UserID:      userID,
		ChallengeID: challengeID,
		ModelID:     modelID,
		Status:      status,
	}
	if err := db.Create(gen).Error; err != nil {
		t.Fatalf("插入测试生成记录失败: %v", err)
	}
	return gen
}
