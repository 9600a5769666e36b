package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/tidwall/gjson"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

type wireLog struct {
	Timestamp string          `json:"timestamp"`
	AgentID   string          `json:"agent_id"`
	AgentName string          `json:"agent_name"`
	Event     string          `json:"event"`
	Details   string          `json:"details"`
	Phase     string          `json:"phase"`
	Data      json.RawMessage `json:"data"`
}

// Decode turns one JSON payload into a Record. now stamps log events whose
// timestamp is missing or unparsable.
func Decode(payload []byte, now time.Time) (Record, error) {
	if !gjson.ValidBytes(payload) {
		return Record{}, ErrMalformed
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return Record{}, ErrMalformed
	}

	typ := RecordType(root.Get("type").String())
	switch typ {
	case TypeComplete:
		return Complete(), nil
	case TypeLog:
		var w wireLog
		if err := json.Unmarshal(payload, &w); err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Log(LogEvent{
			Timestamp: ParseTimestamp(w.Timestamp, now),
			AgentID:   w.AgentID,
			AgentName: w.AgentName,
			Event:     w.Event,
			Details:   w.Details,
			Phase:     w.Phase,
			Data:      w.Data,
		}), nil
	case TypePlan:
		data := root.Get("data")
		if !data.IsObject() {
			return Record{}, fmt.Errorf("%w: plan record without data", ErrMalformed)
		}
		p, err := plan.Parse([]byte(data.Raw))
		if err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return PlanRecord(p), nil
	case TypeReport:
		data := root.Get("data")
		if !data.IsObject() {
			return Record{}, fmt.Errorf("%w: report record without data", ErrMalformed)
		}
		r, err := plan.ParseReport([]byte(data.Raw))
		if err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Record{Type: TypeReport, Report: r}, nil
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

// ParseTimestamp parses an emission timestamp, returning fallback when the
// value is blank or in no recognized layout.
func ParseTimestamp(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return fallback
}
