package repository

import (
	"llmv-go/internal/models"

	"gorm.io/gorm"
)

// ScoringRepository 宿主计分表数据访问层
// 终态写入在生命周期事务内完成, 这里只提供查询
type ScoringRepository struct {
	db *gorm.DB
}

// NewScoringRepository 创建计分Repository
func NewScoringRepository(db *gorm.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// CountSolvesByChallenge 统计某题目的解题人数
func (r *ScoringRepository) CountSolvesByChallenge(challengeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Solve{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error
	return count, err
}

// HasSolved 判断用户是否已解出某题目
func (r *ScoringRepository) HasSolved(userID, challengeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Solve{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	return count > 0, err
}

// MapSolveCounts 批量统计多个题目的解题人数
func (r *ScoringRepository) MapSolveCounts(challengeIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(challengeIDs))
	if len(challengeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ChallengeID uint
		Count       int64
	}
	err := r.db.Model(&models.Solve{}).
		Select("challenge_id, count(*) as count").
		Where("challenge_id IN ?", challengeIDs).
		Group("challenge_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ChallengeID] = row.Count
	}
	return result, nil
}

// MapSolvedByUser 批量查询用户已解出的题目集合
func (r *ScoringRepository) MapSolvedByUser(userID uint, challengeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(challengeIDs))
	if len(challengeIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.Model(&models.Solve{}).
		Where("user_id = ? AND challenge_id IN ?", userID, challengeIDs).
		Distinct().
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListAwardsByUser 获取用户的奖励记录
func (r *ScoringRepository) ListAwardsByUser(userID uint) ([]models.Award, error) {
	var awards []models.Award
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&awards).Error
	return awards, err
}
