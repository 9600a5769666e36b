package stream

import "errors"

// ErrTransport indicates the underlying read failed. It is distinct from a
// normal end of stream, which Ingest reports as a nil error.
var ErrTransport = errors.New("stream transport failure")
