package tui

import (
	"strings"
	"testing"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/oneclickai/opsdeck/internal/domain/project"
	"github.com/oneclickai/opsdeck/internal/visualize"
	"github.com/stretchr/testify/require"
)

func planProject(t *testing.T) *project.Project {
	t.Helper()
	p, err := plan.Parse([]byte(testPlan))
	require.NoError(t, err)
	proj := project.New(1)
	proj.Status = project.StatusCompleted
	proj.Plan = p
	return proj
}

func TestRenderPane_WithoutPlan(t *testing.T) {
	st := NewStyles()
	proj := project.New(1)
	for _, pane := range []Pane{PaneTimeline, PaneGraph, PaneMap, PaneLanes} {
		require.Contains(t, renderPane(pane, proj, st, 100), "No plan yet", pane.String())
	}

	proj.Status = project.StatusError
	proj.Error = "backend unreachable"
	require.Contains(t, renderPane(PaneGraph, proj, st, 100), "backend unreachable")
}

func TestRenderPane_Log(t *testing.T) {
	out := renderPane(PaneLog, project.New(1), NewStyles(), 100)
	require.Contains(t, out, "no events yet")
	require.NotContains(t, out, "Plan received")
}

func TestRenderPane_Views(t *testing.T) {
	st := NewStyles()
	proj := planProject(t)

	timeline := renderPane(PaneTimeline, proj, st, 120)
	require.Contains(t, timeline, "Coordination timeline: Bicycle (10 days)")
	require.Contains(t, timeline, "Day 1")
	require.Contains(t, timeline, "$150.00")

	graph := renderPane(PaneGraph, proj, st, 120)
	require.Contains(t, graph, "Shimano Parts")
	require.Contains(t, graph, "Edges")

	geo := renderPane(PaneMap, proj, st, 120)
	require.Contains(t, geo, "Giant Assembly")
	require.Contains(t, geo, "Routes")
}

func TestRenderLanes_Arrows(t *testing.T) {
	st := NewStyles()
	layout := visualize.MessageLayout{
		Lanes: []visualize.Lane{{Name: "User"}, {Name: "Procurement"}},
		Messages: []visualize.MessageLine{
			{From: "User", To: "Procurement", Text: "order", Protocol: "HTTP/JSON"},
			{From: "Procurement", To: "User", Text: "done", Protocol: "HTTP/JSON"},
		},
		Skipped: 2,
	}
	out := renderLanes(layout, st, 0)
	lines := strings.Split(out, "\n")
	require.Contains(t, lines[1], "▶")
	require.Contains(t, lines[3], "◀")
	require.Contains(t, out, "order [HTTP/JSON]")
	require.Contains(t, out, "2 messages with unknown participants not shown")

	require.Contains(t, renderLanes(visualize.MessageLayout{}, st, 80), "No message exchanges")
}
