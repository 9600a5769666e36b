package tui

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/oneclickai/opsdeck/internal/domain/agent"
	"github.com/oneclickai/opsdeck/internal/domain/project"
	"github.com/oneclickai/opsdeck/internal/visualize"
)

const (
	barCells   = 30
	laneColumn = 20
)

func renderPane(pane Pane, p *project.Project, st Styles, width int) string {
	if pane == PaneLog {
		return renderLog(p, st)
	}
	if p.Plan == nil && (pane != PaneLanes || p.Report == nil) {
		switch p.Status {
		case project.StatusRunning:
			return st.Subtle.Render("Waiting for the plan...")
		case project.StatusError:
			return st.Error.Render(p.Error)
		default:
			return st.Subtle.Render("No plan yet. Run an intent to produce one.")
		}
	}
	switch pane {
	case PaneTimeline:
		return renderTimeline(visualize.BuildTimeline(p.Plan, p.Report), st)
	case PaneGraph:
		return renderGraph(visualize.BuildGraph(p.Plan), st)
	case PaneMap:
		return renderMap(visualize.BuildMap(p.Plan), st)
	case PaneLanes:
		return renderLanes(visualize.BuildMessageLanes(p.Plan, p.Report), st, width)
	}
	return ""
}

func renderLog(p *project.Project, st Styles) string {
	var b strings.Builder
	if p.Intent != "" {
		fmt.Fprintf(&b, "%s %s\n", st.SectionHead.Render("Intent:"), p.Intent)
	}
	fmt.Fprintf(&b, "%s %s %s\n", st.SectionHead.Render("Status:"), statusGlyph(p.Status, st), p.Status)
	if p.Error != "" {
		b.WriteString(st.Error.Render(p.Error) + "\n")
	}

	if len(p.AgentStatuses) > 0 {
		b.WriteString("\n" + st.SectionHead.Render("Agents") + "\n")
		for _, id := range slices.Sorted(maps.Keys(p.AgentStatuses)) {
			glyph := st.Running.Render("●")
			if p.AgentStatuses[id] == agent.StatusComplete {
				glyph = st.Success.Render("✓")
			}
			fmt.Fprintf(&b, "  %s %s\n", glyph, id)
		}
	}

	b.WriteString("\n" + st.SectionHead.Render("Log") + "\n")
	if len(p.Log) == 0 {
		b.WriteString(st.Subtle.Render("  no events yet") + "\n")
	}
	for _, ev := range p.Log {
		name := ev.AgentName
		if name == "" {
			name = ev.AgentID
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			st.Subtle.Render(ev.Timestamp.Format("15:04:05")),
			st.Accent.Render(name),
			ev.Event,
			ev.Details,
		)
	}
	if p.Plan != nil {
		b.WriteString("\n" + st.Success.Render("Plan received. Switch views to inspect it.") + "\n")
	}
	return b.String()
}

func renderTimeline(tl visualize.Timeline, st Styles) string {
	var b strings.Builder
	head := "Coordination timeline"
	if tl.Product != "" {
		head += ": " + tl.Product
	}
	if tl.TotalDays > 0 {
		head += fmt.Sprintf(" (%g days)", tl.TotalDays)
	}
	b.WriteString(st.SectionHead.Render(head) + "\n\n")

	for _, ph := range tl.Phases {
		var bar string
		if ph.DayBased {
			filled := int(math.Round(ph.Width / 100 * barCells))
			bar = st.Bar.Render(strings.Repeat("█", filled)) + st.BarEmpty.Render(strings.Repeat("░", barCells-filled))
		} else {
			bar = st.BarEmpty.Render(strings.Repeat("·", barCells))
		}
		fmt.Fprintf(&b, "%-24s %s %-8s %-13s %s\n", ph.Label, bar, ph.Duration, ph.DayRange, st.Subtle.Render(ph.Agent))
		fmt.Fprintf(&b, "  %s\n", st.Subtle.Render(ph.Details))
	}

	if len(tl.Ticks) > 0 {
		labels := make([]string, len(tl.Ticks))
		for i, t := range tl.Ticks {
			labels[i] = t.Label
		}
		b.WriteString("\n" + st.Subtle.Render(strings.Join(labels, "  ·  ")) + "\n")
	}
	if len(tl.Costs) > 0 {
		b.WriteString("\n" + st.SectionHead.Render("Costs") + "\n")
		for _, c := range tl.Costs {
			fmt.Fprintf(&b, "  %-9s $%.2f\n", c.Label, c.USD)
		}
	}
	return b.String()
}

func renderGraph(g visualize.Graph, st Styles) string {
	rows := map[float64][]visualize.Node{}
	for _, n := range g.Nodes {
		rows[n.Position.Y] = append(rows[n.Position.Y], n)
	}

	var b strings.Builder
	for _, y := range slices.Sorted(maps.Keys(rows)) {
		nodes := rows[y]
		slices.SortStableFunc(nodes, func(a, b visualize.Node) int {
			switch {
			case a.Position.X < b.Position.X:
				return -1
			case a.Position.X > b.Position.X:
				return 1
			}
			return 0
		})
		cells := make([]string, len(nodes))
		for i, n := range nodes {
			label := n.Label
			if n.Sublabel != "" {
				label += "\n" + st.Subtle.Render(n.Sublabel)
			}
			cells[i] = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}

	b.WriteString("\n" + st.SectionHead.Render("Edges") + "\n")
	for _, e := range g.Edges {
		line := fmt.Sprintf("  %s → %s", e.Source, e.Target)
		if e.Label != "" {
			line += "  " + st.Accent.Render(e.Label)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderMap(m visualize.MapLayout, st Styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d markers, %d routes\n\n", st.SectionHead.Render("Supply network"), m.Stats.Markers, m.Stats.Routes)
	for _, mk := range m.Markers {
		fmt.Fprintf(&b, "%-14s %-30s %-24s [%.2f, %.2f]\n",
			mk.RoleLabel, mk.Name, mk.Location, mk.Coordinates.Lon, mk.Coordinates.Lat)
	}
	if len(m.Routes) > 0 {
		b.WriteString("\n" + st.SectionHead.Render("Routes") + "\n")
		for _, r := range m.Routes {
			fmt.Fprintf(&b, "  %-9s %s → %s\n", r.Label, r.From, r.To)
		}
	}
	return b.String()
}

// renderLanes draws a sequence diagram with one fixed-width column per lane.
func renderLanes(l visualize.MessageLayout, st Styles, width int) string {
	if len(l.Lanes) == 0 {
		return st.Subtle.Render("No message exchanges recorded.")
	}
	col := laneColumn
	if width > 0 && len(l.Lanes)*col > width {
		col = max(width/len(l.Lanes), 6)
	}
	index := make(map[string]int, len(l.Lanes))
	var header strings.Builder
	for i, lane := range l.Lanes {
		index[lane.Name] = i
		name := lane.Name
		if r := []rune(name); len(r) > col-1 {
			name = string(r[:col-1])
		}
		header.WriteString(lipgloss.PlaceHorizontal(col, lipgloss.Center, name))
	}

	var b strings.Builder
	b.WriteString(st.SectionHead.Render(header.String()) + "\n")
	total := len(l.Lanes) * col
	for _, msg := range l.Messages {
		row := []rune(strings.Repeat(" ", total))
		for i := range l.Lanes {
			row[i*col+col/2] = '│'
		}
		from, to := index[msg.From]*col+col/2, index[msg.To]*col+col/2
		lo, hi := min(from, to), max(from, to)
		for c := lo + 1; c < hi; c++ {
			row[c] = '─'
		}
		switch {
		case from < to:
			row[hi-1] = '▶'
		case from > to:
			row[lo+1] = '◀'
		default:
			row[from] = '●'
		}
		b.WriteString(string(row) + "\n")
		fmt.Fprintf(&b, "  %s %s\n", msg.Text, st.Subtle.Render("["+msg.Protocol+"]"))
	}
	if l.Skipped > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.Subtle.Render(fmt.Sprintf("%d messages with unknown participants not shown", l.Skipped)))
	}
	return b.String()
}
