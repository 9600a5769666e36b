package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ProjectID == "" || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// Note logs an entry and swallows failures after reporting them. The journal
// is advisory; a write failure must not fail the lifecycle step it describes.
func (s *Service) Note(ctx context.Context, projectID string, typ ActivityType, summary string, details map[string]any) {
	entry := &ActivityEntry{ProjectID: projectID, ActivityType: typ, Summary: summary}
	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("encoding activity details", "type", typ, "error", err)
		} else {
			entry.Details = string(b)
		}
	}
	if err := s.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("journal write failed", "project_id", projectID, "type", typ, "error", err)
	}
}

// GetRecentActivity lists activity entries with filtering.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}
