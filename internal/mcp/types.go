package mcp

import (
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
	"github.com/oneclickai/opsdeck/internal/domain/agent"
	"github.com/oneclickai/opsdeck/internal/domain/event"
	"github.com/oneclickai/opsdeck/internal/domain/project"
)

type EmptyParams struct{}

type ProjectParams struct {
	ID string `json:"id,omitempty" jsonschema:"project id, omit for the active project"`
}

type SelectProjectParams struct {
	ID string `json:"id" jsonschema:"project id to select"`
}

type GetProjectParams struct {
	ID      string `json:"id,omitempty" jsonschema:"project id, omit for the active project"`
	LogTail int    `json:"log_tail,omitempty" jsonschema:"return only the last N log events, 0 for all"`
}

type RenameProjectParams struct {
	ID   string `json:"id,omitempty" jsonschema:"project id, omit for the active project"`
	Name string `json:"name" jsonschema:"new display name"`
}

type RunProjectParams struct {
	ID             string `json:"id,omitempty" jsonschema:"project id, omit for the active project"`
	Intent         string `json:"intent" jsonschema:"request text sent to the orchestration backend"`
	Wait           bool   `json:"wait,omitempty" jsonschema:"block until the run finishes"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"upper bound on waiting, default 120"`
}

type RenderPlanParams struct {
	ID   string `json:"id,omitempty" jsonschema:"project id, omit for the active project"`
	View string `json:"view" jsonschema:"one of timeline, graph, map, lanes"`
}

type GetRecentActivityParams struct {
	ProjectID    string `json:"project_id,omitempty" jsonschema:"filter by project id"`
	Type         string `json:"type,omitempty" jsonschema:"filter by activity type, e.g. run_failed"`
	SinceMinutes int    `json:"since_minutes,omitempty" jsonschema:"only entries from the last N minutes"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
	Offset       int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

type ListProjectsResponse struct {
	ActiveID string            `json:"active_id"`
	Projects []project.Summary `json:"projects"`
}

type ProjectResponse struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Intent        string                  `json:"intent,omitempty"`
	Status        project.Status          `json:"status"`
	Error         string                  `json:"error,omitempty"`
	Active        bool                    `json:"active"`
	LogLength     int                     `json:"log_length"`
	Log           []event.LogEvent        `json:"log"`
	AgentStatuses map[string]agent.Status `json:"agent_statuses"`
	HasPlan       bool                    `json:"has_plan"`
	Product       string                  `json:"product,omitempty"`
	TotalDays     float64                 `json:"total_days,omitempty"`
	StartedAt     time.Time               `json:"started_at,omitzero"`
	FinishedAt    time.Time               `json:"finished_at,omitzero"`
}

type RenderPlanResponse struct {
	ProjectID string `json:"project_id"`
	View      string `json:"view"`
	Geometry  any    `json:"geometry"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time             `json:"timestamp"`
	Type      activity.ActivityType `json:"type"`
	ProjectID string                `json:"project_id"`
	Summary   string                `json:"summary"`
	Details   string                `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Agents int    `json:"agents"`
}

type StatusResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}
