package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetStoryDetails(ctx context.Context, id db.UUID) ([]byte, error) {
	val, err := c.client.Get(ctx, detailsKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagStoryDetails(ctx context.Context, id db.UUID) (string, error) {
	val, err := c.client.Get(ctx, etagKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetStoryDetails(ctx context.Context, id db.UUID, data []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, detailsKey(id), data, ttl).Err(); err != nil {
		logger.Warnf(ctx, "failed caching details for story #%s: %v", id, err)
	}
}

func (c *Cache) SetEtagStoryDetails(ctx context.Context, id db.UUID, etag string, ttl time.Duration) {
	if err := c.client.Set(ctx, etagKey(id), etag, ttl).Err(); err != nil {
		logger.Warnf(ctx, "failed caching etag for story #%s: %v", id, err)
	}
}

func (c *Cache) DeleteStoryDetails(ctx context.Context, id db.UUID) error {
	if err := c.client.Del(ctx, detailsKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagStoryDetails(ctx context.Context, id db.UUID) error {
	if err := c.client.Del(ctx, etagKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func detailsKey(id db.UUID) string {
	return "story:" + id.String()
}

func etagKey(id db.UUID) string {
	return "story:etag:" + id.String()
}
