package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/oneclickai/opsdeck/internal/domain/project"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Starting dashboard..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.styles.Body.Render(m.viewport.View()),
		m.styles.Input.Render(m.input.View()),
		m.viewFooter(),
	)
}

func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("opsdeck")
	if m.backend != "" {
		title += m.styles.Subtle.Render(m.backend)
	}

	var tabs []string
	for _, s := range m.store.Summaries() {
		label := statusGlyph(s.Status, m.styles) + " " + s.Name
		if s.Active {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	var panes []string
	for p := Pane(0); p < paneCount; p++ {
		if p == m.pane {
			panes = append(panes, m.styles.ActiveView.Render(p.String()))
		} else {
			panes = append(panes, m.styles.ViewTab.Render(p.String()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		strings.Join(panes, " "),
	)
}

func (m *Model) viewFooter() string {
	status := m.status
	if strings.HasPrefix(status, "Error:") {
		status = m.styles.Error.Render(status)
	} else {
		status = m.styles.Subtle.Render(status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}

func statusGlyph(s project.Status, st Styles) string {
	switch s {
	case project.StatusRunning:
		return st.Running.Render("●")
	case project.StatusCompleted:
		return st.Success.Render("✓")
	case project.StatusError:
		return st.Error.Render("✗")
	default:
		return st.Subtle.Render("○")
	}
}
