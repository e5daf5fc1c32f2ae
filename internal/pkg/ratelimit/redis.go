package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests in fixed windows shared by every server instance
// pointed at the same Redis.
type RedisLimiter struct {
	client *redis.Client
	rules  Rules
	prefix string
}

// NewRedisClient connects to redisURL and verifies the connection
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewRedisLimiter creates a RedisLimiter. Keys are namespaced by prefix.
func NewRedisLimiter(client *redis.Client, rules Rules, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client: client,
		rules:  rules,
		prefix: prefix,
	}
}

// Allow increments the counter of the current window. Redis errors allow the
// request and are returned for logging.
func (r *RedisLimiter) Allow(ctx context.Context, class Class, clientKey string) (Decision, error) {
	rule, ok := r.rules[class]
	if !ok || rule.Limit <= 0 {
		return unlimited(), nil
	}

	key := fmt.Sprintf("%s:%s:%s", r.prefix, class, clientKey)
	failOpen := Decision{Allowed: true, Limit: rule.Limit, Remaining: rule.Limit}

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return failOpen, fmt.Errorf("rate limit incr %s: %w", key, err)
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return failOpen, fmt.Errorf("rate limit ttl %s: %w", key, err)
	}
	// first hit of a window, or a key that lost its expiry
	if count == 1 || ttl < 0 {
		if err := r.client.Expire(ctx, key, rule.Window).Err(); err != nil {
			return failOpen, fmt.Errorf("rate limit expire %s: %w", key, err)
		}
		ttl = rule.Window
	}

	if count > int64(rule.Limit) {
		return Decision{
			Allowed:    false,
			Limit:      rule.Limit,
			Remaining:  0,
			RetryAfter: ttl,
		}, nil
	}
	return Decision{
		Allowed:   true,
		Limit:     rule.Limit,
		Remaining: rule.Limit - int(count),
	}, nil
}
