package port

import (
	"context"
)

// HTTPRenderer mediates between HTTP handlers and the story getter use
// case. It provides caching capabilities and returns both the JSON
// representation of the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	RenderGetStory(ctx context.Context, getter StoryGetter, in GetStoryInput) ([]byte, string, error)
}
