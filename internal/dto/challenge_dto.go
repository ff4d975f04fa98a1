package dto

// CreateChallengeRequest 创建题目请求
type CreateChallengeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Preprompt   string `json:"preprompt"`
	Value       int    `json:"value" binding:"gte=0"`
	Category    string `json:"category"`
}

// UpdateChallengeRequest 更新题目请求
type UpdateChallengeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Preprompt   *string `json:"preprompt"`
	Value       *int    `json:"value"`
	Category    *string `json:"category"`
	State       *string `json:"state" binding:"omitempty,oneof=visible hidden"`
}

// ChallengeResponse 题目响应
// 面向用户的视图不包含preprompt, 避免泄露系统提示词
type ChallengeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int    `json:"value"`
	Category    string `json:"category"`
	Solves      int64  `json:"solves"`
	Solved      bool   `json:"solved"`
	State       string `json:"state,omitempty"`
	Preprompt   string `json:"preprompt,omitempty"`
}
