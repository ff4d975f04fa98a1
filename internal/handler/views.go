package handler

import (
	"time"

	"llmv-go/internal/dto"
	"llmv-go/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// toChatTurnInfos 转换对话轮次视图
func toChatTurnInfos(turns []models.ChatTurn) []dto.ChatTurnInfo {
	infos := make([]dto.ChatTurnInfo, len(turns))
	for i, turn := range turns {
		infos[i] = dto.ChatTurnInfo{
			Seq:      turn.Seq,
			Prompt:   turn.Prompt,
			Response: turn.Response,
			Date:     turn.CreatedAt.Format(timeLayout),
		}
	}
	return infos
}

// toGenerationInfo 转换生成记录视图, 模型只暴露匿名代号
func toGenerationInfo(gen models.Generation) dto.GenerationInfo {
	return dto.GenerationInfo{
		ID:          gen.ID,
		ChallengeID: gen.ChallengeID,
		AnonName:    gen.Model.AnonName,
		Status:      string(gen.Status),
		Points:      gen.Points,
		Date:        gen.CreatedAt.Format(timeLayout),
		Turns:       toChatTurnInfos(gen.Turns),
	}
}

// toAdminGenerationInfos 批量转换管理员视图, 附带各记录的提交时间
// submittedAt中没有的记录(未提交)省略该字段
func toAdminGenerationInfos(gens []models.Generation, submittedAt map[uint]time.Time) []dto.AdminGenerationInfo {
	infos := make([]dto.AdminGenerationInfo, len(gens))
	for i, gen := range gens {
		info := dto.AdminGenerationInfo{
			GenerationInfo: toGenerationInfo(gen),
			UserID:         gen.UserID,
			TeamID:         gen.TeamID,
		}
		if at, ok := submittedAt[gen.ID]; ok {
			info.SubmittedAt = at.Format(timeLayout)
		}
		infos[i] = info
	}
	return infos
}
