package visualize_test

import (
	"testing"
	"unicode/utf8"

	"github.com/oneclickai/opsdeck/internal/domain/plan"
	"github.com/oneclickai/opsdeck/internal/visualize"
	"github.com/stretchr/testify/require"
)

func TestCanonicalLane(t *testing.T) {
	tests := map[string]string{
		"user":               "User",
		"  Procurement ":     "Procurement Agent",
		"SYSTEM":             "Procurement Agent",
		"Agent Registry":     "Agent Registry",
		"partner database":   "Partner Database",
		"Manufacturer":       "Manufacturer Agent",
		"retailer agent":     "Retailer Agent",
		"LOGISTICS AGENT":    "Logistics Agent",
		"supplier":           "Supplier Agent",
		"Manufacturer Agent": "Manufacturer Agent",
	}
	for in, want := range tests {
		got, ok := visualize.CanonicalLane(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}

	_, ok := visualize.CanonicalLane("Mystery Bot")
	require.False(t, ok)
}

func TestBuildMessageLanes_Layout(t *testing.T) {
	l := visualize.BuildMessageLanes(loadPlan(t), nil)

	require.Equal(t, []visualize.Lane{
		{Name: "User", X: 85},
		{Name: "Procurement Agent", X: 215},
		{Name: "Supplier Agent", X: 345},
		{Name: "Logistics Agent", X: 475},
	}, l.Lanes)
	require.Equal(t, 1, l.Skipped)
	require.Len(t, l.Messages, 3)
	require.Equal(t, 580.0, l.Width)
	require.Equal(t, 360.0, l.Height)

	first := l.Messages[0]
	require.Equal(t, "User", first.From)
	require.Equal(t, 30.0, first.Y)
	require.Equal(t, visualize.DefaultProtocol, first.Protocol)
	require.True(t, first.LeftToRight)

	require.Equal(t, "A2A", l.Messages[1].Protocol)

	last := l.Messages[2]
	require.Equal(t, 190.0, last.Y)
	require.Equal(t, 215.0, last.FromX)
	require.Equal(t, 475.0, last.ToX)
	require.Equal(t, visualize.MaxMessageLen-2, utf8.RuneCountInString(last.Text))
	require.Equal(t, "…", last.Text[len(last.Text)-len("…"):])
	require.Equal(t, longMessage, last.FullText)
}

func TestBuildMessageLanes_RightToLeft(t *testing.T) {
	report := &plan.CoordinationReport{CommunicationFlow: []plan.Message{
		{From: "Retailer", To: "user", Message: "Delivered"},
	}}
	l := visualize.BuildMessageLanes(&plan.Plan{}, report)

	require.Len(t, l.Lanes, 2)
	require.Equal(t, "User", l.Lanes[0].Name)
	require.False(t, l.Messages[0].LeftToRight)
	require.Equal(t, "Delivered", l.Messages[0].Text)
}

func TestBuildMessageLanes_PlanReportWins(t *testing.T) {
	report := &plan.CoordinationReport{MessageExchanges: []plan.Message{{From: "registry", To: "user"}}}
	l := visualize.BuildMessageLanes(loadPlan(t), report)
	for _, lane := range l.Lanes {
		require.NotEqual(t, "Agent Registry", lane.Name)
	}
}

func TestBuildMessageLanes_Empty(t *testing.T) {
	l := visualize.BuildMessageLanes(nil, nil)
	require.Empty(t, l.Lanes)
	require.Empty(t, l.Messages)
	require.Equal(t, visualize.HeaderHeight+visualize.FooterHeight, l.Height)
}

func TestBuildMessageLanes_Deterministic(t *testing.T) {
	p := loadPlan(t)
	require.Equal(t, visualize.BuildMessageLanes(p, nil), visualize.BuildMessageLanes(p, nil))
}
