package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header      lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	ViewTab     lipgloss.Style
	ActiveView  lipgloss.Style
	Body        lipgloss.Style
	Input       lipgloss.Style
	Help        lipgloss.Style
	Subtle      lipgloss.Style
	Accent      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Running     lipgloss.Style
	Bar         lipgloss.Style
	BarEmpty    lipgloss.Style
	SectionHead lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")).
			Bold(true).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00E6B8")).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		ViewTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")).
			Padding(0, 1),

		ActiveView: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5A4FCF")).
			Padding(0, 1),

		Body: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#AD8CFF")).
			Padding(0, 1),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00E6B8")),

		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")),

		Bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A4FCF")),

		BarEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333")),

		SectionHead: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AD8CFF")).
			Bold(true),
	}
}
