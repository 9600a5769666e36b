package session

import (
	"context"
	"io"
)

// Runner opens the event stream of a new orchestration run. The returned
// body is owned by the store and closed when the run ends.
type Runner interface {
	StartRun(ctx context.Context, intent string) (io.ReadCloser, error)
}
