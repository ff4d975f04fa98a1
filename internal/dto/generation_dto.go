package dto

// GenerateRequest 文本生成请求
// GenerationID为空时开始一次新尝试, 否则在已有记录上继续对话
type GenerateRequest struct {
	ChallengeID  uint   `json:"challenge_id" binding:"required"`
	Prompt       string `json:"prompt" binding:"required"`
	GenerationID *uint  `json:"generation_id"`
}

// GenerateData 文本生成响应数据
// Fragment是该记录分配到的匿名模型代号, 供前端展示
type GenerateData struct {
	Text     string `json:"text"`
	ID       uint   `json:"id"`
	Fragment string `json:"fragment,omitempty"`
}

// ChatTurnInfo 单条对话轮次
type ChatTurnInfo struct {
	Seq      int    `json:"seq"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	Date     string `json:"date"`
}

// GenerationInfo 生成记录视图
type GenerationInfo struct {
	ID          uint           `json:"id"`
	ChallengeID uint           `json:"challenge_id"`
	AnonName    string         `json:"model"`
	Status      string         `json:"status"`
	Points      int            `json:"points"`
	Date        string         `json:"date"`
	Turns       []ChatTurnInfo `json:"turns"`
}

// AdminGenerationInfo 管理员视角的生成记录, 额外携带账户信息和提交时间
type AdminGenerationInfo struct {
	GenerationInfo
	UserID      uint   `json:"user_id"`
	TeamID      *uint  `json:"team_id"`
	SubmittedAt string `json:"submitted_at,omitempty"`
}

// UnusedModelsData 未使用模型列表
// Models为空表示该用户已用完此题全部模型
type UnusedModelsData struct {
	Models    []string `json:"models"`
	Exhausted bool     `json:"exhausted"`
}
