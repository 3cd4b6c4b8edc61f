package port

import "context"

// Transcoder runs a single external media-processing invocation. Calls are
// synchronous and blocking; they belong on the worker pool, never on the
// request path.
type Transcoder interface {
	Run(ctx context.Context, args []string) error
	// ProbeDuration returns the duration of a media stream in seconds.
	ProbeDuration(ctx context.Context, path string) (float64, error)
}
