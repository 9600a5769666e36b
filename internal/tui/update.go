package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.ready = true
		m.refresh()
		return m, nil

	case projectChangedMsg:
		if msg.id == m.store.ActiveID() {
			m.refresh()
		}
		return m, listen(m.store.Changes())

	case storeClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.Run):
		m.startRun()
		return nil, true

	case key.Matches(msg, m.keys.NewTab):
		p := m.store.AddProject()
		m.setStatus("Created " + p.Name)
		m.refresh()
		return nil, true

	case key.Matches(msg, m.keys.CloseTab):
		if err := m.store.CloseProject(m.store.ActiveID()); err != nil {
			m.setError(err)
		}
		m.refresh()
		return nil, true

	case key.Matches(msg, m.keys.NextTab):
		m.cycleProject(1)
		return nil, true

	case key.Matches(msg, m.keys.PrevTab):
		m.cycleProject(-1)
		return nil, true

	case key.Matches(msg, m.keys.Reset):
		if err := m.store.Reset(m.store.ActiveID()); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Project reset")
		}
		m.refresh()
		return nil, true

	case key.Matches(msg, m.keys.NextView):
		m.setPane((m.pane + 1) % paneCount)
		return nil, true

	case key.Matches(msg, m.keys.PrevView):
		m.setPane((m.pane + paneCount - 1) % paneCount)
		return nil, true

	case key.Matches(msg, m.keys.ShowLog):
		m.setPane(PaneLog)
		return nil, true
	case key.Matches(msg, m.keys.ShowTime):
		m.setPane(PaneTimeline)
		return nil, true
	case key.Matches(msg, m.keys.ShowGraph):
		m.setPane(PaneGraph)
		return nil, true
	case key.Matches(msg, m.keys.ShowMap):
		m.setPane(PaneMap)
		return nil, true
	case key.Matches(msg, m.keys.ShowLanes):
		m.setPane(PaneLanes)
		return nil, true

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return nil, true
	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.HalfViewDown()
		return nil, true
	}
	return nil, false
}

func (m *Model) startRun() {
	intent := strings.TrimSpace(m.input.Value())
	if intent == "" {
		m.setStatus("Type an intent first")
		return
	}
	id := m.store.ActiveID()
	if err := m.store.Run(m.ctx, id, intent); err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("run requested", "project_id", id)
	m.input.Reset()
	m.setPane(PaneLog)
	m.setStatus("Run started")
}

func (m *Model) cycleProject(step int) {
	summaries := m.store.Summaries()
	if len(summaries) < 2 {
		return
	}
	active := m.store.ActiveID()
	for i, s := range summaries {
		if s.ID == active {
			next := summaries[(i+step+len(summaries))%len(summaries)]
			if err := m.store.SetActive(next.ID); err != nil {
				m.setError(err)
			}
			break
		}
	}
	m.refresh()
}

func (m *Model) setPane(p Pane) {
	m.pane = p
	m.refresh()
	m.viewport.GotoTop()
}

func (m *Model) setStatus(s string) { m.status = s }

func (m *Model) setError(err error) {
	m.status = "Error: " + err.Error()
	m.logger.Warn("dashboard action failed", "error", err)
}

// resize fits the body viewport between the header and the prompt.
func (m *Model) resize() {
	chrome := lipgloss.Height(m.viewHeader()) + lipgloss.Height(m.viewFooter()) + 3 + m.styles.Body.GetVerticalFrameSize()
	m.viewport.Width = max(m.width-m.styles.Body.GetHorizontalFrameSize(), 10)
	m.viewport.Height = max(m.height-chrome, 3)
	m.input.Width = max(m.width-6, 10)
}

// refresh re-renders the body for the active project.
func (m *Model) refresh() {
	p, err := m.store.Get(m.store.ActiveID())
	if err != nil {
		m.viewport.SetContent(m.styles.Error.Render(err.Error()))
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(renderPane(m.pane, p, m.styles, m.viewport.Width))
	if m.pane == PaneLog && atBottom {
		m.viewport.GotoBottom()
	}
}
