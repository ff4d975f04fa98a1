package dto

// VerifyRequest 管理员评审动作
type VerifyRequest struct {
	Status string `validate:"required,verify_status"`
	Value  int    `validate:"min=0"`
}

// AwardInfo 奖励记录视图
type AwardInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int    `json:"value"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// SubmissionsData 按状态分组的用户提交视图
type SubmissionsData struct {
	Pending   []GenerationInfo `json:"pending"`
	Correct   []GenerationInfo `json:"correct"`
	Awarded   []GenerationInfo `json:"awarded"`
	Incorrect []GenerationInfo `json:"incorrect"`
}
