package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/busboarding/config"
	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), ttl)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// GetRunByDigest returns the run computed for an identical booking set, or nil on a miss.
func (c *RedisCache) GetRunByDigest(ctx context.Context, digest string) (*domain.BoardingRun, error) {
	return c.get(ctx, digestKey(digest))
}

func (c *RedisCache) GetRunByID(ctx context.Context, id string) (*domain.BoardingRun, error) {
	return c.get(ctx, runKey(id))
}

// SetRun stores the run under both its id and its digest.
func (c *RedisCache) SetRun(ctx context.Context, run *domain.BoardingRun) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, runKey(run.ID), payload, c.ttl)
		pipe.Set(ctx, digestKey(run.Digest), payload, c.ttl)
		return nil
	})
	return err
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string) (*domain.BoardingRun, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var run domain.BoardingRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func runKey(id string) string {
	return "cache:boarding:run:" + id
}

func digestKey(digest string) string {
	return "cache:boarding:digest:" + digest
}
