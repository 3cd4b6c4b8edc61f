package mock

import (
	"context"

	"github.com/festalab/stories-ms-go/internal/port"
)

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data []byte
	Etag string
	Err  error

	Called bool
	Getter port.StoryGetter
	In     port.GetStoryInput
}

func (m *MockHTTPRenderer) RenderGetStory(ctx context.Context, getter port.StoryGetter, in port.GetStoryInput) ([]byte, string, error) {
	m.Called = true
	m.Getter = getter
	m.In = in
	return m.Data, m.Etag, m.Err
}
