package event

import "errors"

var (
	// ErrUnknownType indicates a payload whose type discriminator is not recognized.
	ErrUnknownType = errors.New("unknown record type")
	// ErrMalformed indicates a payload that is not a usable JSON object.
	ErrMalformed = errors.New("malformed record payload")
)
