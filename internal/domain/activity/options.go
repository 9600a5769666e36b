package activity

import "time"

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    string
	ActivityType *ActivityType
	// Since keeps entries created at or after it; zero keeps everything.
	Since  time.Time
	Limit  int
	Offset int
}

// Matches reports whether e passes the project, type and time filters.
func (o ListActivityOptions) Matches(e ActivityEntry) bool {
	if o.ProjectID != "" && e.ProjectID != o.ProjectID {
		return false
	}
	if o.ActivityType != nil && e.ActivityType != *o.ActivityType {
		return false
	}
	return o.Since.IsZero() || !e.CreatedAt.Before(o.Since)
}
