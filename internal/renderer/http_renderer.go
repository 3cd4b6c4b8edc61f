package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/festalab/stories-ms-go/internal/port"
)

// storyDetailsTTL bounds staleness for the anonymous read path. Writes
// invalidate eagerly; the TTL only covers invalidation failures.
const storyDetailsTTL = 5 * time.Minute

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderGetStory fetches story details either from cache or from the
// wrapped use case. It returns the JSON encoded output and a quoted ETag
// string. Only the anonymous view is cached: an owner can see their own
// hidden stories, and that view must never be served to someone else.
func (r *httpRenderer) RenderGetStory(ctx context.Context, getter port.StoryGetter, in port.GetStoryInput) ([]byte, string, error) {
	cacheable := in.RequesterMemberID == nil

	if cacheable {
		raw, err := r.cache.GetStoryDetails(ctx, in.ID)
		etag, errEtag := r.cache.GetEtagStoryDetails(ctx, in.ID)
		if err == nil && errEtag == nil && raw != nil && etag != "" {
			return raw, etag, nil
		}
	}

	out, err := getter.GetStory(ctx, in)
	if err != nil {
		return nil, "", err
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	if cacheable {
		r.cache.SetStoryDetails(ctx, in.ID, raw, storyDetailsTTL)
		r.cache.SetEtagStoryDetails(ctx, in.ID, etag, storyDetailsTTL)
	}

	return raw, etag, nil
}
