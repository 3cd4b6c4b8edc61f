package mock

import (
	"context"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	StoryOut []byte

	// etag values
	EtagStory string

	// errors
	GetStoryErr     error
	GetEtagStoryErr error
	DelStoryErr     error
	DelEtagStoryErr error

	// call flags
	GetStoryCalled     bool
	GetEtagStoryCalled bool
	SetStoryCalled     bool
	SetEtagStoryCalled bool
	DelStoryCalled     bool
	DelEtagStoryCalled bool
}

func (c *Cache) GetStoryDetails(ctx context.Context, id db.UUID) ([]byte, error) {
	c.GetStoryCalled = true
	if c.GetStoryErr != nil {
		return nil, c.GetStoryErr
	}
	return c.StoryOut, nil
}

func (c *Cache) GetEtagStoryDetails(ctx context.Context, id db.UUID) (string, error) {
	c.GetEtagStoryCalled = true
	if c.GetEtagStoryErr != nil {
		return "", c.GetEtagStoryErr
	}
	return c.EtagStory, nil
}

func (c *Cache) SetStoryDetails(ctx context.Context, id db.UUID, data []byte, ttl time.Duration) {
	c.SetStoryCalled = true
	c.StoryOut = data
}

func (c *Cache) SetEtagStoryDetails(ctx context.Context, id db.UUID, etag string, ttl time.Duration) {
	c.SetEtagStoryCalled = true
	c.EtagStory = etag
}

func (c *Cache) DeleteStoryDetails(ctx context.Context, id db.UUID) error {
	c.DelStoryCalled = true
	return c.DelStoryErr
}

func (c *Cache) DeleteEtagStoryDetails(ctx context.Context, id db.UUID) error {
	c.DelEtagStoryCalled = true
	return c.DelEtagStoryErr
}
