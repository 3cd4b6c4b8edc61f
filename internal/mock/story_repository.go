package mock

import (
	"context"
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
	"github.com/festalab/stories-ms-go/internal/model"
	"github.com/festalab/stories-ms-go/internal/port"
)

// MockStoryRepo implements repository operations for tests.
type MockStoryRepo struct {
	StoryRecord *model.Story

	GetErr        error
	CreateErr     error
	UpdateErr     error
	CompleteErr   error
	ListErr       error
	ListDelErr    error
	HardDeleteErr error

	CompleteTransitioned bool

	GetCalled        bool
	Created          *model.Story
	Updated          *model.Story
	CompleteCalled   bool
	CompleteID       db.UUID
	CompleteStatus   string
	CompleteStoryURL *string
	CompleteThumbURL *string
	CompletePrevURL  *string
	ListCalled       bool
	ListFilter       port.ListStoriesFilter
	ListOut          []*model.Story
	ListDelCalled    bool
	ListDelBefore    time.Time
	ListDelOut       []*model.Story
	HardDeleteCalled bool
	HardDeletedIDs   []db.UUID
}

func (m *MockStoryRepo) Create(ctx context.Context, story *model.Story) error {
	m.Created = story
	return m.CreateErr
}

func (m *MockStoryRepo) Update(ctx context.Context, story *model.Story) error {
	m.Updated = story
	return m.UpdateErr
}

func (m *MockStoryRepo) GetByID(ctx context.Context, id db.UUID) (*model.Story, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.StoryRecord, nil
}

func (m *MockStoryRepo) CompleteProcessing(ctx context.Context, id db.UUID, status string, storyURL, thumbnailURL, previewURL *string) (bool, error) {
	m.CompleteCalled = true
	m.CompleteID = id
	m.CompleteStatus = status
	m.CompleteStoryURL = storyURL
	m.CompleteThumbURL = thumbnailURL
	m.CompletePrevURL = previewURL
	if m.CompleteErr != nil {
		return false, m.CompleteErr
	}
	return m.CompleteTransitioned, nil
}

func (m *MockStoryRepo) List(ctx context.Context, filter port.ListStoriesFilter) ([]*model.Story, error) {
	m.ListCalled = true
	m.ListFilter = filter
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *MockStoryRepo) ListSoftDeletedBefore(ctx context.Context, before time.Time) ([]*model.Story, error) {
	m.ListDelCalled = true
	m.ListDelBefore = before
	if m.ListDelErr != nil {
		return nil, m.ListDelErr
	}
	return m.ListDelOut, nil
}

func (m *MockStoryRepo) HardDelete(ctx context.Context, id db.UUID) error {
	m.HardDeleteCalled = true
	m.HardDeletedIDs = append(m.HardDeletedIDs, id)
	return m.HardDeleteErr
}
