package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oneclickai/opsdeck/internal/domain/agent"
	"github.com/oneclickai/opsdeck/internal/domain/event"
	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// displayNameLimit caps the tab label derived from an intent.
const displayNameLimit = 28

// Project is one tracked orchestration run.
type Project struct {
	ID            string                   `json:"id"`
	Ordinal       int                      `json:"ordinal"`
	Name          string                   `json:"name"`
	Intent        string                   `json:"intent"`
	Status        Status                   `json:"status"`
	Log           []event.LogEvent         `json:"log"`
	AgentStatuses map[string]agent.Status  `json:"agent_statuses"`
	Plan          *plan.Plan               `json:"plan,omitempty"`
	Report        *plan.CoordinationReport `json:"report,omitempty"`
	Error         string                   `json:"error,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	StartedAt     time.Time                `json:"started_at,omitzero"`
	FinishedAt    time.Time                `json:"finished_at,omitzero"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    Status `json:"status"`
	LogLength int    `json:"log_length"`
	HasPlan   bool   `json:"has_plan"`
	Active    bool   `json:"active"`
}

// New creates an idle project labelled after its ordinal.
func New(ordinal int) *Project {
	return &Project{
		ID:            uuid.NewString(),
		Ordinal:       ordinal,
		Name:          DefaultName(ordinal),
		Status:        StatusIdle,
		AgentStatuses: map[string]agent.Status{},
		CreatedAt:     time.Now(),
	}
}

// DefaultName is the label of a project that has not run yet.
func DefaultName(ordinal int) string {
	return fmt.Sprintf("Project %d", ordinal)
}

// DisplayName derives a short tab label from intent text.
func DisplayName(intent string) string {
	intent = strings.Join(strings.Fields(intent), " ")
	runes := []rune(intent)
	if len(runes) <= displayNameLimit {
		return intent
	}
	return strings.TrimSpace(string(runes[:displayNameLimit])) + "..."
}

// Summarize returns the listing view of p.
func (p *Project) Summarize(active bool) Summary {
	return Summary{
		ID:        p.ID,
		Name:      p.Name,
		Status:    p.Status,
		LogLength: len(p.Log),
		HasPlan:   p.Plan != nil,
		Active:    active,
	}
}

// Clone returns a copy that shares no mutable state with p. The plan and
// report are read-only documents and are shared.
func (p *Project) Clone() *Project {
	c := *p
	c.Log = append([]event.LogEvent(nil), p.Log...)
	c.AgentStatuses = make(map[string]agent.Status, len(p.AgentStatuses))
	for k, v := range p.AgentStatuses {
		c.AgentStatuses[k] = v
	}
	return &c
}
