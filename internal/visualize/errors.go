package visualize

import "errors"

var (
	ErrUnknownView = errors.New("unknown view")
	ErrNoPlan      = errors.New("no plan to render")
)
