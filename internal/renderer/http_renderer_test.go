package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/mock"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

func TestRenderGetStory_CacheHit(t *testing.T) {
	cache := &mock.Cache{StoryOut: []byte(`{"id":"x"}`), EtagStory: `"deadbeef"`}
	getter := &mock.MockStoryGetter{}
	r := NewHTTPRenderer(cache)

	raw, etag, err := r.RenderGetStory(context.Background(), getter, port.GetStoryInput{ID: db.NewUUID()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"id":"x"}` || etag != `"deadbeef"` {
		t.Errorf("expected the cached payload, got %s / %s", raw, etag)
	}
	if getter.Called {
		t.Error("use case should not run on a cache hit")
	}
}

func TestRenderGetStory_CacheMissRunsUseCase(t *testing.T) {
	st := &model.Story{ID: db.NewUUID(), IsOpen: true, ProcessingStatus: model.StatusCompleted}
	cache := &mock.Cache{}
	getter := &mock.MockStoryGetter{Out: st}
	r := NewHTTPRenderer(cache)

	raw, etag, err := r.RenderGetStory(context.Background(), getter, port.GetStoryInput{ID: st.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !getter.Called {
		t.Fatal("use case should run on a cache miss")
	}

	want, _ := json.Marshal(st)
	if string(raw) != string(want) {
		t.Errorf("payload mismatch: got %s", raw)
	}
	wantEtag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(want))
	if etag != wantEtag {
		t.Errorf("etag mismatch: got %s want %s", etag, wantEtag)
	}
	if !cache.SetStoryCalled || !cache.SetEtagStoryCalled {
		t.Error("anonymous results should be cached")
	}
}

func TestRenderGetStory_OwnerViewNotCached(t *testing.T) {
	st := &model.Story{ID: db.NewUUID(), MemberID: 42, IsOpen: false}
	cache := &mock.Cache{StoryOut: []byte(`{"stale":"entry"}`), EtagStory: `"aaaa"`}
	getter := &mock.MockStoryGetter{Out: st}
	r := NewHTTPRenderer(cache)

	owner := int64(42)
	raw, _, err := r.RenderGetStory(context.Background(), getter, port.GetStoryInput{ID: st.ID, RequesterMemberID: &owner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !getter.Called {
		t.Error("an owner view must bypass the cache entirely")
	}
	if string(raw) == `{"stale":"entry"}` {
		t.Error("the anonymous cached entry must not be served to the owner path")
	}
	if cache.SetStoryCalled {
		t.Error("the owner view must not be written to the shared cache")
	}
}

func TestRenderGetStory_UseCaseError(t *testing.T) {
	cache := &mock.Cache{}
	getter := &mock.MockStoryGetter{Err: errors.New("nope")}
	r := NewHTTPRenderer(cache)

	_, _, err := r.RenderGetStory(context.Background(), getter, port.GetStoryInput{ID: db.NewUUID()})
	if err == nil {
		t.Fatal("expected an error")
	}
	if cache.SetStoryCalled {
		t.Error("nothing should be cached on error")
	}
}
