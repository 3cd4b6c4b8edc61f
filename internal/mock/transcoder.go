package mock

import (
	"context"
	"os"
)

// MockTranscoder implements subprocess invocations for tests. When
// OutputContent is set, the last argument of each Run call is written to
// disk so pipeline code can see the outputs a real transcoder would leave.
type MockTranscoder struct {
	RunErr   error
	ProbeOut float64
	ProbeErr error

	// RunErrOnCall fails only the nth Run call (1-based).
	RunErrOnCall int

	// EmptyOutputOnCall writes a zero-byte output on the nth Run call
	// (1-based), simulating a subprocess that exits 0 with no usable output.
	EmptyOutputOnCall int

	OutputContent []byte

	RunCalls    [][]string
	ProbeCalls  []string
	ProbeCalled bool
}

func (t *MockTranscoder) Run(ctx context.Context, args []string) error {
	t.RunCalls = append(t.RunCalls, args)
	if t.RunErr != nil {
		return t.RunErr
	}
	if t.RunErrOnCall > 0 && len(t.RunCalls) == t.RunErrOnCall {
		return os.ErrInvalid
	}
	if t.OutputContent != nil && len(args) > 0 {
		out := args[len(args)-1]
		content := t.OutputContent
		if t.EmptyOutputOnCall > 0 && len(t.RunCalls) == t.EmptyOutputOnCall {
			content = nil
		}
		if err := os.WriteFile(out, content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (t *MockTranscoder) ProbeDuration(ctx context.Context, path string) (float64, error) {
	t.ProbeCalled = true
	t.ProbeCalls = append(t.ProbeCalls, path)
	if t.ProbeErr != nil {
		return 0, t.ProbeErr
	}
	return t.ProbeOut, nil
}
