package session

import (
	"errors"

	"github.com/oneclickai/opsdeck/internal/domain/project"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAlreadyRunning indicates a run was requested while one is in flight.
	ErrAlreadyRunning = project.ErrAlreadyRunning
	// ErrNotRunning indicates a run-scoped operation on a project that is not running.
	ErrNotRunning = project.ErrNotRunning
	// ErrInvalidInput indicates invalid store input.
	ErrInvalidInput = project.ErrInvalidInput
	// ErrClosed indicates the store has been shut down.
	ErrClosed = errors.New("session store closed")
	// ErrNoRunner indicates the store was built without a way to start runs.
	ErrNoRunner = errors.New("no run backend configured")

	errStaleRun = errors.New("run superseded")
)
