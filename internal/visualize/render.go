package visualize

import (
	"fmt"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
)

// View names one of the four renderings.
type View string

const (
	ViewTimeline View = "timeline"
	ViewGraph    View = "graph"
	ViewMap      View = "map"
	ViewLanes    View = "lanes"
)

// Views lists every view in display order.
func Views() []View {
	return []View{ViewTimeline, ViewGraph, ViewMap, ViewLanes}
}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	for _, v := range Views() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Render builds the geometry of one view. The lanes view falls back to
// report when the plan has no messages, so it is the only view that can
// render without a plan.
func Render(view View, p *plan.Plan, report *plan.CoordinationReport) (any, error) {
	if p == nil && (view != ViewLanes || report == nil) {
		return nil, ErrNoPlan
	}
	switch view {
	case ViewTimeline:
		return BuildTimeline(p, report), nil
	case ViewGraph:
		return BuildGraph(p), nil
	case ViewMap:
		return BuildMap(p), nil
	case ViewLanes:
		return BuildMessageLanes(p, report), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}
