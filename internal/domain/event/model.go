package event

import (
	"encoding/json"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// RecordType discriminates decoded stream records.
type RecordType string

const (
	TypeLog      RecordType = "log"
	TypePlan     RecordType = "plan"
	TypeReport   RecordType = "report"
	TypeComplete RecordType = "complete"
)

// Known reports whether t is a record type the client understands.
func (t RecordType) Known() bool {
	switch t {
	case TypeLog, TypePlan, TypeReport, TypeComplete:
		return true
	}
	return false
}

// LogEvent is one progress line emitted by an agent during a run.
type LogEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Type      RecordType      `json:"type"`
	AgentID   string          `json:"agent_id,omitempty"`
	AgentName string          `json:"agent_name,omitempty"`
	Event     string          `json:"event,omitempty"`
	Details   string          `json:"details,omitempty"`
	Phase     string          `json:"phase,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Record is a decoded stream payload. Exactly one of Log, Plan or Report is
// set for the matching type; complete records carry no body.
type Record struct {
	Type   RecordType
	Log    *LogEvent
	Plan   *plan.Plan
	Report *plan.CoordinationReport
}

// Complete returns a completion record.
func Complete() Record { return Record{Type: TypeComplete} }

// Log wraps a log event in a record.
func Log(ev LogEvent) Record {
	ev.Type = TypeLog
	return Record{Type: TypeLog, Log: &ev}
}

// PlanRecord wraps a plan document in a record.
func PlanRecord(p *plan.Plan) Record { return Record{Type: TypePlan, Plan: p} }
