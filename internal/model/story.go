package model

import (
	"time"

	"github.com/festalab/stories-ms-go/internal/db"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	CategoryImage = "image"
	CategoryVideo = "video"
)

// Story is the durable record behind one media upload. It is created in
// status "processing" before any transcoding starts; the completion
// reconciler moves it to a terminal status exactly once.
type Story struct {
	ID               db.UUID   `json:"id"`
	MemberID         int64     `json:"member_id"`
	FestaID          *int64    `json:"festa_id,omitempty"`
	FestaName        *string   `json:"festa_name,omitempty"`
	IsOpen           bool      `json:"is_open"`
	MediaCategory    string    `json:"media_category"`
	ProcessingStatus string    `json:"processing_status"`
	StoryURL         *string   `json:"story_url,omitempty"`
	ThumbnailURL     *string   `json:"thumbnail_url,omitempty"`
	PreviewURL       *string   `json:"preview_url,omitempty"`
	Metadata         Metadata  `json:"metadata"`
	IsDeleted        bool      `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Terminal reports whether the processing status can no longer change.
func (s *Story) Terminal() bool {
	return s.ProcessingStatus == StatusCompleted || s.ProcessingStatus == StatusFailed
}
