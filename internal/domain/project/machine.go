package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/agent"
	"github.com/oneclickai/opsdeck/internal/domain/event"
)

// Start moves the project into running for intent, discarding the previous
// run's log, plan, report, agent statuses and error.
func (p *Project) Start(intent string) error {
	if p.Status == StatusRunning {
		return ErrAlreadyRunning
	}
	intent = strings.TrimSpace(intent)
	if intent == "" {
		return fmt.Errorf("%w: intent is required", ErrInvalidInput)
	}
	p.Intent = intent
	p.Name = DisplayName(intent)
	p.Status = StatusRunning
	p.Log = nil
	p.AgentStatuses = map[string]agent.Status{}
	p.Plan = nil
	p.Report = nil
	p.Error = ""
	p.StartedAt = time.Now()
	p.FinishedAt = time.Time{}
	return nil
}

// Apply folds one decoded record into the project. Log, plan and report
// records require a running project; a completion record on a project that
// is no longer running is ignored.
func (p *Project) Apply(rec event.Record) error {
	switch rec.Type {
	case event.TypeComplete:
		p.Complete()
		return nil
	case event.TypeLog, event.TypePlan, event.TypeReport:
	default:
		return fmt.Errorf("%w: %q", event.ErrUnknownType, rec.Type)
	}

	if p.Status != StatusRunning {
		return ErrNotRunning
	}

	switch rec.Type {
	case event.TypeLog:
		if rec.Log == nil {
			return fmt.Errorf("%w: log record without body", ErrInvalidInput)
		}
		p.Log = append(p.Log, *rec.Log)
		if rec.Log.AgentID != "" {
			// Last write wins: a later active tag overrides an earlier complete.
			p.AgentStatuses[rec.Log.AgentID] = agent.Classify(rec.Log.Event)
		}
	case event.TypePlan:
		if rec.Plan == nil {
			return fmt.Errorf("%w: plan record without body", ErrInvalidInput)
		}
		p.Plan = rec.Plan
	case event.TypeReport:
		if rec.Report == nil {
			return fmt.Errorf("%w: report record without body", ErrInvalidInput)
		}
		p.Report = rec.Report
	}
	return nil
}

// Complete marks a running project completed. It reports whether the status
// changed, so repeated completion signals are no-ops.
func (p *Project) Complete() bool {
	if p.Status != StatusRunning {
		return false
	}
	p.Status = StatusCompleted
	p.FinishedAt = time.Now()
	return true
}

// Fail marks a running project failed with msg.
func (p *Project) Fail(msg string) error {
	if p.Status != StatusRunning {
		return ErrNotRunning
	}
	p.Status = StatusError
	p.Error = msg
	p.FinishedAt = time.Now()
	return nil
}

// Reset returns the project to idle with nothing from previous runs.
func (p *Project) Reset() {
	p.Status = StatusIdle
	p.Intent = ""
	p.Log = nil
	p.AgentStatuses = map[string]agent.Status{}
	p.Plan = nil
	p.Report = nil
	p.Error = ""
	p.StartedAt = time.Time{}
	p.FinishedAt = time.Time{}
}

// Rename sets the display label.
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	p.Name = name
	return nil
}
