package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("pricing rules cache miss")

// Cache holds the current rule set in front of the repository.
type Cache interface {
	Get(ctx context.Context) (*RuleSet, error)
	Set(ctx context.Context, rules *RuleSet) error
	Invalidate(ctx context.Context) error
}

// NopCache always misses. Used when no cache backend is configured.
type NopCache struct{}

func (NopCache) Get(context.Context) (*RuleSet, error) { return nil, ErrCacheMiss }

func (NopCache) Set(context.Context, *RuleSet) error { return nil }

func (NopCache) Invalidate(context.Context) error { return nil }

const redisRulesKey = "pricing:rules"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (*RuleSet, error) {
	data, err := c.client.Get(ctx, redisRulesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get pricing rules: %w", err)
	}

	var rules RuleSet
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode cached pricing rules: %w", err)
	}
	return &rules, nil
}

func (c *RedisCache) Set(ctx context.Context, rules *RuleSet) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("encode pricing rules: %w", err)
	}
	return c.client.Set(ctx, redisRulesKey, data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, redisRulesKey).Err()
}
