package service

import (
	"errors"
)

// 生命周期与模型分配的业务错误
var (
	// ErrDuplicateSubmission 生成记录已提交过评审
	ErrDuplicateSubmission = errors.New("该记录已提交评审, 不能重复提交")
	// ErrInvalidStateTransition 生成记录处于不允许该操作的状态
	ErrInvalidStateTransition = errors.New("记录状态不允许该操作")
	// ErrInvalidVerifyStatus 管理员评审动作不合法
	ErrInvalidVerifyStatus = errors.New("无效的评审动作, 只能是solve、award或fail")
	// ErrNamePoolTooSmall 匿名代号池小于模型数量
	ErrNamePoolTooSmall = errors.New("匿名代号池不足以覆盖全部模型")
	// ErrModelsExhausted 用户已用完该题目的全部模型
	ErrModelsExhausted = errors.New("该题目的全部模型均已尝试")
	// ErrAttemptInProgress 并发的新尝试分配到了同一模型
	ErrAttemptInProgress = errors.New("该题目上已有进行中的尝试, 请刷新后继续")
)
