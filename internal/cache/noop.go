package cache

import (
	"context"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetStoryDetails(ctx context.Context, id db.UUID) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagStoryDetails(ctx context.Context, id db.UUID) (string, error) {
	return "", nil
}

func (n *NoopCache) SetStoryDetails(ctx context.Context, id db.UUID, data []byte, ttl time.Duration) {
}

func (n *NoopCache) SetEtagStoryDetails(ctx context.Context, id db.UUID, etag string, ttl time.Duration) {
}

func (n *NoopCache) DeleteStoryDetails(ctx context.Context, id db.UUID) error { return nil }

func (n *NoopCache) DeleteEtagStoryDetails(ctx context.Context, id db.UUID) error {
	return nil
}
