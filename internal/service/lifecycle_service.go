package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"llmv-go/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LifecycleService 提交生命周期管理
// 生成记录的状态流转: unsubmitted -> pending -> correct/incorrect/awarded
// 终态写入与宿主计分行在同一事务中提交
type LifecycleService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewLifecycleService 创建生命周期服务
func NewLifecycleService(db *gorm.DB, logger *logrus.Logger) *LifecycleService {
	return &LifecycleService{
		db:     db,
		logger: logger,
	}
}

// SubmitForReview 用户将生成记录提交给管理员评审
// 只有记录所有者能提交, 只有unsubmitted状态能提交;
// 重复提交由提交标记表的唯一索引兜底, 统一报ErrDuplicateSubmission
func (s *LifecycleService) SubmitForReview(userID, generationID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var gen models.Generation
		if err := tx.First(&gen, generationID).Error; err != nil {
			return err
		}
		if gen.UserID != userID {
			return gorm.ErrRecordNotFound
		}
		if gen.Status != models.StatusUnsubmitted {
			return ErrDuplicateSubmission
		}

		sub := &models.Submission{
			GenerationID: gen.ID,
			SubmittedAt:  time.Now(),
		}
		if err := tx.Create(sub).Error; err != nil {
			// 并发的第二个提交者撞到唯一索引
			if isUniqueViolation(err) {
				return ErrDuplicateSubmission
			}
			return err
		}

		return tx.Model(&models.Generation{}).
			Where("id = ?", gen.ID).
			Update("status", models.StatusPending).Error
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"generation_id": generationID,
	}).Info("记录已提交评审")
	return nil
}

// Verify 管理员评审一条pending记录
// status ∈ {solve, award, fail}; awardValue只在award时生效
// 状态更新、分值和计分行在一个事务内提交, 任一步失败整体回滚, 记录保持pending
func (s *LifecycleService) Verify(generationID uint, status string, awardValue int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var gen models.Generation
		if err := tx.First(&gen, generationID).Error; err != nil {
			return err
		}

		// 先校验动作再校验状态, 非法动作不触碰任何数据
		switch status {
		case "solve", "award", "fail":
		default:
			return ErrInvalidVerifyStatus
		}

		if gen.Status != models.StatusPending {
			return ErrInvalidStateTransition
		}

		var challenge models.Challenge
		if err := tx.First(&challenge, gen.ChallengeID).Error; err != nil {
			return err
		}

		now := time.Now()
		switch status {
		case "solve":
			if err := tx.Model(&models.Generation{}).Where("id = ?", gen.ID).
				Updates(map[string]interface{}{
					"status": models.StatusCorrect,
					"points": challenge.Value,
				}).Error; err != nil {
				return err
			}
			return tx.Create(&models.Solve{
				UserID:       gen.UserID,
				TeamID:       gen.TeamID,
				ChallengeID:  gen.ChallengeID,
				GenerationID: gen.ID,
				Date:         now,
			}).Error

		case "award":
			if err := tx.Model(&models.Generation{}).Where("id = ?", gen.ID).
				Updates(map[string]interface{}{
					"status": models.StatusAwarded,
					"points": awardValue,
				}).Error; err != nil {
				return err
			}
			return tx.Create(&models.Award{
				UserID:      gen.UserID,
				TeamID:      gen.TeamID,
				Name:        "Submission",
				Description: fmt.Sprintf("Correct Submission for %s", challenge.Name),
				Value:       awardValue,
				Category:    challenge.Category,
				Date:        now,
			}).Error

		default: // fail
			if err := tx.Model(&models.Generation{}).Where("id = ?", gen.ID).
				Updates(map[string]interface{}{
					"status": models.StatusIncorrect,
					"points": 0,
				}).Error; err != nil {
				return err
			}
			return tx.Create(&models.Fail{
				UserID:       gen.UserID,
				TeamID:       gen.TeamID,
				ChallengeID:  gen.ChallengeID,
				GenerationID: gen.ID,
				Date:         now,
			}).Error
		}
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"generation_id": generationID,
		"status":        status,
	}).Info("完成评审")
	return nil
}

// isUniqueViolation 判断是否为唯一约束冲突
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
