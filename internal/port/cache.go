package port

import (
	"context"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
)

// Cache provides caching capabilities for story retrieval.
type Cache interface {
	GetStoryDetails(ctx context.Context, id db.UUID) ([]byte, error)
	GetEtagStoryDetails(ctx context.Context, id db.UUID) (string, error)
	SetStoryDetails(ctx context.Context, id db.UUID, data []byte, ttl time.Duration)
	SetEtagStoryDetails(ctx context.Context, id db.UUID, etag string, ttl time.Duration)
	DeleteStoryDetails(ctx context.Context, id db.UUID) error
	DeleteEtagStoryDetails(ctx context.Context, id db.UUID) error
}
