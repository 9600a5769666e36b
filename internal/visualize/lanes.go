package visualize

import (
	"strings"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// Message lane geometry.
const (
	LaneWidth     = 130.0
	LaneMargin    = 20.0
	MessageHeight = 80.0
	HeaderHeight  = 80.0
	FooterHeight  = 40.0
	MessageTop    = 30.0

	// MaxMessageLen is the longest message text kept as is; longer text is
	// cut to MaxMessageLen-3 runes plus an ellipsis.
	MaxMessageLen = 80

	DefaultProtocol = "HTTP/JSON"
)

// Canonical lanes in display order.
var laneOrder = []string{
	"User",
	"Procurement Agent",
	"Agent Registry",
	"Partner Database",
	"Supplier Agent",
	"Manufacturer Agent",
	"Logistics Agent",
	"Retailer Agent",
}

var laneAliases = map[string]string{
	"user":               "User",
	"procurement agent":  "Procurement Agent",
	"procurement":        "Procurement Agent",
	"system":             "Procurement Agent",
	"agent registry":     "Agent Registry",
	"registry":           "Agent Registry",
	"partner database":   "Partner Database",
	"supplier":           "Supplier Agent",
	"supplier agent":     "Supplier Agent",
	"manufacturer":       "Manufacturer Agent",
	"manufacturer agent": "Manufacturer Agent",
	"logistics":          "Logistics Agent",
	"logistics agent":    "Logistics Agent",
	"retailer":           "Retailer Agent",
	"retailer agent":     "Retailer Agent",
}

// CanonicalLane maps a free-text participant name onto its lane. Matching
// ignores case and surrounding whitespace.
func CanonicalLane(name string) (string, bool) {
	lane, ok := laneAliases[strings.ToLower(strings.TrimSpace(name))]
	return lane, ok
}

// Lane is one participant track.
type Lane struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
}

// MessageLine is one message drawn between two lanes.
type MessageLine struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	FromX       float64 `json:"from_x"`
	ToX         float64 `json:"to_x"`
	Y           float64 `json:"y"`
	Text        string  `json:"text"`
	FullText    string  `json:"full_text"`
	Protocol    string  `json:"protocol"`
	LeftToRight bool    `json:"left_to_right"`
}

// MessageLayout is the rendered message-flow diagram.
type MessageLayout struct {
	Lanes    []Lane        `json:"lanes"`
	Messages []MessageLine `json:"messages"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	// Skipped counts messages naming a participant outside the lane table.
	Skipped int `json:"skipped,omitempty"`
}

// BuildMessageLanes lays out the plan's message exchanges, falling back to
// report when the plan carries none. Only lanes referenced by a drawn
// message are kept, in canonical order.
func BuildMessageLanes(p *plan.Plan, report *plan.CoordinationReport) MessageLayout {
	var msgs []plan.Message
	if p != nil {
		msgs = p.CoordinationReport.Messages()
	}
	if len(msgs) == 0 && report != nil {
		msgs = report.Messages()
	}

	type resolved struct {
		msg      plan.Message
		from, to string
	}
	var out MessageLayout
	kept := make([]resolved, 0, len(msgs))
	used := make(map[string]bool)
	for _, m := range msgs {
		from, okFrom := CanonicalLane(m.From)
		to, okTo := CanonicalLane(m.To)
		if !okFrom || !okTo {
			out.Skipped++
			continue
		}
		used[from] = true
		used[to] = true
		kept = append(kept, resolved{msg: m, from: from, to: to})
	}

	laneX := make(map[string]float64, len(used))
	for _, name := range laneOrder {
		if !used[name] {
			continue
		}
		x := float64(len(out.Lanes))*LaneWidth + LaneWidth/2 + LaneMargin
		laneX[name] = x
		out.Lanes = append(out.Lanes, Lane{Name: name, X: x})
	}

	out.Messages = make([]MessageLine, 0, len(kept))
	for i, r := range kept {
		protocol := r.msg.Protocol
		if protocol == "" {
			protocol = DefaultProtocol
		}
		fromX, toX := laneX[r.from], laneX[r.to]
		out.Messages = append(out.Messages, MessageLine{
			From:        r.from,
			To:          r.to,
			FromX:       fromX,
			ToX:         toX,
			Y:           float64(i)*MessageHeight + MessageTop,
			Text:        truncate(r.msg.Message, MaxMessageLen),
			FullText:    r.msg.Message,
			Protocol:    protocol,
			LeftToRight: fromX <= toX,
		})
	}

	out.Width = float64(len(out.Lanes))*LaneWidth + 3*LaneMargin
	out.Height = HeaderHeight + float64(len(out.Messages))*MessageHeight + FooterHeight
	return out
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "…"
}
