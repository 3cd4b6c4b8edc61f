package story

import (
	"context"
	"errors"
	"testing"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/mock"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

func TestListStories_DefaultsAndClamping(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"zero values", 0, 0, 1, defaultPageSize},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 1, 5000, 1, defaultPageSize},
		{"valid values pass through", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mock.MockStoryRepo{}
			svc := NewStoryLister(repo)

			if _, err := svc.ListStories(context.Background(), port.ListStoriesFilter{Page: tt.page, Size: tt.size}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.ListFilter.Page != tt.wantPage || repo.ListFilter.Size != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d",
					repo.ListFilter.Page, repo.ListFilter.Size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestListStories_FestaFilterPassesThrough(t *testing.T) {
	repo := &mock.MockStoryRepo{}
	svc := NewStoryLister(repo)

	festaID := int64(7)
	if _, err := svc.ListStories(context.Background(), port.ListStoriesFilter{FestaID: &festaID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.ListFilter.FestaID == nil || *repo.ListFilter.FestaID != 7 {
		t.Error("festa filter should reach the repository")
	}
}

func TestListStories_RepoError(t *testing.T) {
	repo := &mock.MockStoryRepo{ListErr: errors.New("db fail")}
	svc := NewStoryLister(repo)

	if _, err := svc.ListStories(context.Background(), port.ListStoriesFilter{}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestListStories_ReturnsRecords(t *testing.T) {
	out := []*model.Story{
		{ID: db.NewUUID(), IsOpen: true, ProcessingStatus: model.StatusCompleted},
		{ID: db.NewUUID(), IsOpen: true, ProcessingStatus: model.StatusCompleted},
	}
	repo := &mock.MockStoryRepo{ListOut: out}
	svc := NewStoryLister(repo)

	got, err := svc.ListStories(context.Background(), port.ListStoriesFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 stories, got %d", len(got))
	}
}
