package redis_limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisLimiter 基于Redis的并发限制器
// 用于限制对同一后端模型的并发生成请求数
type RedisLimiter struct {
	client        *redis.Client
	logger        *logrus.Logger
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
}

// NewRedisLimiter 创建基于Redis的并发限制器
func NewRedisLimiter(client *redis.Client, logger *logrus.Logger, maxConcurrent int, keyPrefix string, ttl time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:        client,
		logger:        logger,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
	}
}

// Acquire 获取并发槽位
// 使用Lua脚本保证检查和自增的原子性
func (rl *RedisLimiter) Acquire(ctx context.Context, model string) error {
	redisKey := rl.keyPrefix + model

	script := redis.NewScript(
		`local current = redis.call('GET', KEYS[1])
		if current == false then
			current = 0
		else
			current = tonumber(current)
		end

		if current >= tonumber(ARGV[1]) then
			return current + 1
		end

		local newCount = redis.call('INCR', KEYS[1])
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
		return newCount`,
	)

	result, err := script.Run(ctx, rl.client, []string{redisKey}, rl.maxConcurrent, int(rl.ttl.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("执行Lua脚本失败: %w", err)
	}

	newCount := int(result.(int64))
	if newCount > rl.maxConcurrent {
		rl.logger.WithFields(logrus.Fields{
			"model":   model,
			"current": newCount - 1,
			"max":     rl.maxConcurrent,
		}).Warn("模型并发槽位已满")
		return fmt.Errorf("模型%s并发已达到上限: %d", model, rl.maxConcurrent)
	}

	return nil
}

// Release 释放并发槽位
func (rl *RedisLimiter) Release(ctx context.Context, model string) {
	redisKey := rl.keyPrefix + model

	script := redis.NewScript(
		`local count = redis.call('DECR', KEYS[1])
		if tonumber(count) <= 0 then
			redis.call('DEL', KEYS[1])
			return 0
		else
			redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
			return count
		end`,
	)

	if err := script.Run(ctx, rl.client, []string{redisKey}, int(rl.ttl.Seconds())).Err(); err != nil {
		rl.logger.WithField("model", model).Warnf("释放并发槽位失败: %v", err)
	}
}
