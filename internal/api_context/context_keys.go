package api_context

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/db"
)

type ctxKey string

const (
	StoryIDKey     ctxKey = "storyID"
	AuthServiceKey ctxKey = "authService"
)

func StoryIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(StoryIDKey).(db.UUID)
	return id, ok
}

func AuthServiceFromContext(ctx context.Context) (string, bool) {
	svc, ok := ctx.Value(AuthServiceKey).(string)
	return svc, ok
}
