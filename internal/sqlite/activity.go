package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/repository"
)

const (
	insertActivity = `INSERT INTO activity_log (project_id, activity_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?)`
	selectActivity = `SELECT id, project_id, activity_type, summary, details, created_at FROM activity_log`
)

// ActivityRepository persists the lifecycle journal.
type ActivityRepository struct {
	db *DB
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts entry and fills in its id and, when unset, its timestamp.
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	if entry == nil {
		return repository.ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	details := sql.NullString{String: entry.Details, Valid: entry.Details != ""}

	res, err := r.db.ExecContext(ctx, insertActivity,
		entry.ProjectID, entry.ActivityType, entry.Summary, details, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// List returns matching entries newest first.
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	query, args := listQuery(opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.ActivityEntry
	for rows.Next() {
		var (
			e       activity.ActivityEntry
			details sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.ActivityType, &e.Summary, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.Details = details.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}

func listQuery(opts activity.ListActivityOptions) (string, []any) {
	var (
		where []string
		args  []any
	)
	if opts.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.ActivityType != nil {
		where = append(where, "activity_type = ?")
		args = append(args, *opts.ActivityType)
	}
	if !opts.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.Since.UTC())
	}

	var b strings.Builder
	b.WriteString(selectActivity)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")

	// SQLite needs a LIMIT before OFFSET; -1 means unbounded.
	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	if limit > 0 || opts.Offset > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	if opts.Offset > 0 {
		b.WriteString(" OFFSET ?")
		args = append(args, opts.Offset)
	}
	return b.String(), args
}
