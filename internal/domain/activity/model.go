package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated ActivityType = "project_created"
	TypeProjectRenamed ActivityType = "project_renamed"
	TypeProjectReset   ActivityType = "project_reset"
	TypeProjectClosed  ActivityType = "project_closed"
	TypeRunStarted     ActivityType = "run_started"
	TypePlanReceived   ActivityType = "plan_received"
	TypeRunCompleted   ActivityType = "run_completed"
	TypeRunFailed      ActivityType = "run_failed"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
