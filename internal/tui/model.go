// Package tui is the terminal dashboard: one tab per project, an intent
// prompt, and the run log or a plan view of the active project.
package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oneclickai/opsdeck/internal/domain/project"
)

// Store defines the session store operations the dashboard needs.
type Store interface {
	Summaries() []project.Summary
	Get(id string) (*project.Project, error)
	ActiveID() string
	SetActive(id string) error
	AddProject() *project.Project
	CloseProject(id string) error
	Run(ctx context.Context, id, intent string) error
	Reset(id string) error
	Changes() <-chan string
}

// Pane selects what the body shows.
type Pane int

const (
	PaneLog Pane = iota
	PaneTimeline
	PaneGraph
	PaneMap
	PaneLanes
	paneCount
)

var paneNames = [paneCount]string{"Log", "Timeline", "Graph", "Map", "Lanes"}

func (p Pane) String() string {
	if p < 0 || p >= paneCount {
		return "?"
	}
	return paneNames[p]
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	store  Store
	logger *slog.Logger
	ctx    context.Context

	styles   Styles
	keys     keyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model

	pane    Pane
	status  string
	backend string
	width   int
	height  int
	ready   bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the dashboard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBackendLabel shows label, typically the backend URL and health, in the header.
func WithBackendLabel(label string) Option {
	return func(m *Model) { m.backend = label }
}

// New creates the dashboard. ctx bounds every run it starts.
func New(ctx context.Context, store Store, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = "Describe what to build, e.g. Buy parts for a bicycle"
	input.Prompt = "› "
	input.CharLimit = 500
	input.Focus()

	m := &Model{
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:      ctx,
		styles:   NewStyles(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
		viewport: viewport.New(0, 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listen(m.store.Changes()))
}

// Pane returns the selected body view.
func (m *Model) Pane() Pane { return m.pane }

// Status returns the last status line message.
func (m *Model) Status() string { return m.status }

type projectChangedMsg struct{ id string }

type storeClosedMsg struct{}

// listen waits for the next store change.
func listen(changes <-chan string) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-changes
		if !ok {
			return storeClosedMsg{}
		}
		return projectChangedMsg{id: id}
	}
}
