package project

import "errors"

var (
	// ErrAlreadyRunning indicates a run was requested while one is in flight.
	ErrAlreadyRunning = errors.New("project already running")
	// ErrNotRunning indicates a run-scoped operation on a project with no run in flight.
	ErrNotRunning = errors.New("project not running")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
