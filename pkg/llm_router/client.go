package llm_router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured 路由地址或令牌未配置
// 按约定在首次调用时才暴露, 不在启动时检查
var ErrNotConfigured = errors.New("LLM路由地址或令牌未配置")

// GenerationError 远程生成失败
// 包括非2xx状态码和响应体中携带error字段两种情况
type GenerationError struct {
	StatusCode int
	Message    string
}

// Error 实现error接口
func (e *GenerationError) Error() string {
	return fmt.Sprintf("LLM路由返回错误: status=%d, message=%s", e.StatusCode, e.Message)
}

// Message 对话历史中的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest 生成请求
type GenerateRequest struct {
	UUID    string    `json:"uuid"`
	Prompt  string    `json:"prompt"`
	System  string    `json:"system"`
	Model   string    `json:"model"`
	History []Message `json:"history"`
}

// generateResponse 路由服务响应体
type generateResponse struct {
	Generation string `json:"generation"`
	Error      string `json:"error"`
}

// Client LLM路由调用客户端
type Client struct {
	client     *http.Client
	baseURL    string
	token      string
	maxRetries int
}

// NewClient 创建LLM路由客户端
// maxRetries只支持0或1, 超时由调用方通过timeout显式指定
func NewClient(baseURL, token string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		token:      token,
		maxRetries: maxRetries,
	}
}

// Generate 调用远程LLM生成文本
// 成功返回生成文本, 失败返回*GenerationError, 配置缺失返回ErrNotConfigured
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if c.baseURL == "" || c.token == "" {
		return "", ErrNotConfigured
	}

	text, err := c.generateOnce(ctx, req)
	if err == nil {
		return text, nil
	}

	// 零或一次重试: 只对传输错误和5xx重试一次
	if c.maxRetries > 0 && retryable(err) {
		return c.generateOnce(ctx, req)
	}

	return "", err
}

// generateOnce 单次请求
func (c *Client) generateOnce(ctx context.Context, req *GenerateRequest) (string, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	url := c.baseURL + "/chat/generate"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	// 200响应也可能携带错误信息
	if result.Error != "" {
		return "", &GenerationError{
			StatusCode: resp.StatusCode,
			Message:    result.Error,
		}
	}

	return result.Generation, nil
}

// retryable 判断错误是否可重试
func retryable(err error) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.StatusCode >= 500
	}
	// 传输层错误
	return true
}
