package session

import (
	"log/slog"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithJournal records lifecycle activity through svc instead of the
// default in-memory journal.
func WithJournal(svc *activity.Service) Option {
	return func(s *Store) {
		if svc != nil {
			s.journal = svc
		}
	}
}

// WithRunTimeout bounds the total duration of every run. Zero disables it.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Store) { s.runTimeout = d }
}

// WithChangeBuffer sets how many change notifications may queue before
// further ones are coalesced away.
func WithChangeBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.changes = make(chan string, n)
		}
	}
}
