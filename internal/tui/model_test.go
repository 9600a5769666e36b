package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oneclickai/opsdeck/internal/domain/project"
	"github.com/oneclickai/opsdeck/internal/domain/session"
	"github.com/oneclickai/opsdeck/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPlan = `{
	"product": "Bicycle",
	"timeline": {"parts_procurement_days": 4, "assembly_days": 3, "shipping_days": 2, "delivery_days": 1, "total_days": 10},
	"suppliers": {"selected_details": [{"name": "Shimano Parts", "location": "Osaka", "coordinates": [135.5, 34.7]}]},
	"manufacturer": {"selected": "Giant Assembly", "selected_details": {"name": "Giant Assembly", "location": "Taichung", "coordinates": [120.7, 24.1]}},
	"logistics": {"selected": "Maersk", "selected_details": {"name": "Maersk", "hub": "Rotterdam", "coordinates": [4.5, 51.9]}},
	"cost_summary": {"parts_cost_usd": 120, "shipping_cost_usd": 30, "total_cost_usd": 150, "retail_price_usd": 299},
	"coordination_report": {"message_exchanges": [{"from": "Procurement Agent", "to": "Supplier Agent", "message": "Need frames"}]}
}`

func runBody() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data: %s\n\n", `{"type":"log","timestamp":"2026-03-01T10:00:00Z","agent_id":"supplier_agent","agent_name":"Supplier Agent","event":"quotes_generated","details":"3 quotes"}`)
	fmt.Fprintf(&b, "data: {\"type\":\"plan\",\"data\":%s}\n\n", strings.ReplaceAll(testPlan, "\n", ""))
	b.WriteString("data: {\"type\":\"complete\"}\n\n")
	return b.String()
}

func newTestModel(t *testing.T) (*Model, *session.Store) {
	t.Helper()
	runner := &mocks.Runner{}
	runner.On("StartRun", mock.Anything, mock.Anything).Return(io.NopCloser(strings.NewReader(runBody())), nil)
	store := session.NewStore(runner)
	t.Cleanup(func() { _ = store.Close() })

	m := New(context.Background(), store, WithBackendLabel("http://localhost:8000"))
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	return m, store
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModel_RunShowsLogAndPlanViews(t *testing.T) {
	m, store := newTestModel(t)
	require.Contains(t, m.View(), "Project 1")
	require.Contains(t, m.View(), "http://localhost:8000")

	typeText(m, "Build a bicycle")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Run started", m.Status())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id := store.ActiveID()
	require.NoError(t, store.Wait(ctx, id))

	m.Update(projectChangedMsg{id: id})
	view := m.View()
	require.Contains(t, view, "Build a bicycle")
	require.Contains(t, view, "Supplier Agent")
	require.Contains(t, view, "Plan received")

	m.Update(tea.KeyMsg{Type: tea.KeyF2})
	require.Equal(t, PaneTimeline, m.Pane())
	require.Contains(t, m.View(), "Coordination timeline: Bicycle")

	m.Update(tea.KeyMsg{Type: tea.KeyF4})
	require.Contains(t, m.View(), "Rotterdam")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlRight})
	require.Equal(t, PaneLanes, m.Pane())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlRight})
	require.Equal(t, PaneLog, m.Pane())
}

func TestModel_EmptyIntentIsRejected(t *testing.T) {
	m, store := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Type an intent first", m.Status())

	p, err := store.Get(store.ActiveID())
	require.NoError(t, err)
	require.Equal(t, project.StatusIdle, p.Status)
}

func TestModel_ProjectTabs(t *testing.T) {
	m, store := newTestModel(t)
	first := store.ActiveID()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Len(t, store.Summaries(), 2)
	require.Contains(t, m.View(), "Project 2")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotEqual(t, first, store.ActiveID())
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, first, store.ActiveID())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	require.Len(t, store.Summaries(), 1)
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_StoreClosedStopsListening(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(storeClosedMsg{})
	require.Nil(t, cmd)
}
