package story

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/festalab/stories-ms-go/internal/logger"
	"github.com/festalab/stories-ms-go/internal/port"
)

// DefaultPurgeRetention is how long a soft-deleted story survives before
// the sweep hard-deletes it and its stored objects.
const DefaultPurgeRetention = 24 * time.Hour

type deletedPurgerSrv struct {
	repo      port.StoryRepository
	strg      port.ObjectStorage
	retention time.Duration
}

// compile-time check: *deletedPurgerSrv must satisfy port.DeletedPurger
var _ port.DeletedPurger = (*deletedPurgerSrv)(nil)

func NewDeletedPurger(repo port.StoryRepository, strg port.ObjectStorage, retention time.Duration) port.DeletedPurger {
	if retention <= 0 {
		retention = DefaultPurgeRetention
	}
	return &deletedPurgerSrv{repo: repo, strg: strg, retention: retention}
}

// PurgeDeletedStories removes stories soft-deleted longer than the
// retention window ago, stored objects first. A story whose objects
// cannot all be removed is skipped and retried on the next sweep.
func (s *deletedPurgerSrv) PurgeDeletedStories(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)
	stories, err := s.repo.ListSoftDeletedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed listing soft-deleted stories: %w", err)
	}
	if len(stories) == 0 {
		return nil
	}

	logger.Infof(ctx, "purging %d soft-deleted stories...", len(stories))
	var failed int
	for _, st := range stories {
		if err := s.removeObjects(ctx, st.StoryURL, st.ThumbnailURL, st.PreviewURL); err != nil {
			logger.Warnf(ctx, "skipping purge of story #%s: %v", st.ID, err)
			failed++
			continue
		}
		if err := s.repo.HardDelete(ctx, st.ID); err != nil {
			logger.Warnf(ctx, "failed hard-deleting story #%s: %v", st.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("purge left %d of %d stories behind", failed, len(stories))
	}
	return nil
}

func (s *deletedPurgerSrv) removeObjects(ctx context.Context, urls ...*string) error {
	for _, u := range urls {
		if u == nil || *u == "" {
			continue
		}
		key, err := objectKeyFromURL(*u)
		if err != nil {
			return err
		}
		if err := s.strg.RemoveFile(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// objectKeyFromURL recovers the object key from a public URL. Uploads
// always key objects as "stories/<file>", so the key is the last two
// path segments.
func objectKeyFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("unparseable object URL %q: %w", raw, err)
	}
	dir, file := path.Split(path.Clean(u.Path))
	if file == "" {
		return "", fmt.Errorf("object URL %q has no file segment", raw)
	}
	return path.Join(path.Base(path.Clean(dir)), file), nil
}
