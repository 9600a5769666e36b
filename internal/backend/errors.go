package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection classifies failures to reach the backend or to get a
	// successful response from it.
	ErrConnection = errors.New("backend connection failed")
	// ErrChunkTimeout indicates the stream stalled longer than the idle limit.
	ErrChunkTimeout = errors.New("no stream data within idle timeout")
)

// ConnectionError describes a connection-class failure with a remediation hint.
type ConnectionError struct {
	URL        string
	StatusCode int
	Err        error
	Hint       string
}

func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("cannot reach backend at %s", e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("backend at %s returned status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// Unwrap exposes the cause.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Is makes every ConnectionError match ErrConnection.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }
