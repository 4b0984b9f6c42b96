package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tradenet/internal/render"
)

const maxNotices = 4

func (m Model) View() string {
	if m.session.Closed() {
		return ""
	}
	st := m.theme.styles()

	scene := m.session.Scene()
	render.Rasterize(m.canvas, scene)
	if scene.Empty() {
		msg := "no trades"
		m.canvas.Text(max((m.canvas.Width-len(msg))/2, 0), m.canvas.Height/2, msg)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		colorize(m.canvas, st.graph, st.accent),
		m.sidebar(st),
	)
}

// colorize renders canvas rows, using accent for marked cells.
func colorize(c *render.Canvas, base, accent lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Marked[row][col] == c.Marked[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if c.Marked[row][start] {
				b.WriteString(accent.Render(run))
			} else {
				b.WriteString(base.Render(run))
			}
			start = col
		}
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) sidebar(st styles) string {
	var sections []string

	title := "TRADENET"
	if n := len(m.results); n > 0 {
		title = fmt.Sprintf("%s  %d/%d", m.results[m.selected].Name, m.selected+1, n)
	}
	sections = append(sections, st.header.Render(title))

	eng := m.session.Engine()
	g := m.session.Graph()
	row := func(label, value string) string {
		return st.label.Render(label) + st.value.Render(value)
	}
	status := eng.Phase().String()
	if eng.Converged() {
		status += " (" + eng.Reason().String() + ")"
	}
	sections = append(sections,
		row("phase", status),
		row("tick", fmt.Sprintf("%d", eng.Tick())),
		row("energy", fmt.Sprintf("%.3e", eng.KineticEnergy())),
		row("graph", fmt.Sprintf("%d nodes, %d edges", g.Len(), len(g.Edges))),
		row("zoom", fmt.Sprintf("%.2fx", m.session.Transform().Zoom)),
	)

	if samples := m.session.Trace().Samples(); len(samples) > 1 {
		plot := asciigraph.Plot(samples,
			asciigraph.Height(4),
			asciigraph.Width(sidebarWidth-14),
			asciigraph.Caption("kinetic energy"),
		)
		sections = append(sections, "", st.chart.Render(plot))
	}

	if len(m.results) > 0 {
		if mk := m.results[m.selected].Market; mk != nil {
			sections = append(sections, "",
				row("volume", fmt.Sprintf("%.2f", mk.TradingVolume)),
				row("demand", fmt.Sprintf("%.0f%% met", mk.RatioFulfilledDemand*100)),
			)
		}
	}

	if tip, ok := m.session.Tooltip(); ok {
		sections = append(sections, "", st.tooltip.Render(strings.Join(tip.Lines(), "\n")))
	}

	if notices := m.notices(); len(notices) > 0 {
		sections = append(sections, "")
		for i, n := range notices {
			if i == maxNotices {
				sections = append(sections, st.warning.Render(fmt.Sprintf("+%d more", len(notices)-maxNotices)))
				break
			}
			sections = append(sections, st.warning.Render(truncate("! "+n, sidebarWidth-4)))
		}
	}
	if m.err != nil {
		sections = append(sections, "", st.errText.Render(truncate(m.err.Error(), sidebarWidth-4)))
	}

	help := "n/p result  +/- zoom  ? help  q quit"
	if m.showHelp {
		help = strings.Join([]string{
			"n/p     next/prev result",
			"+/-     zoom (wheel too)",
			"arrows  pan",
			"0       reset view",
			"c       recenter",
			"l       labels",
			"t       theme: " + m.theme.Name,
			"q       quit",
		}, "\n")
	}
	sections = append(sections, st.help.Render(help))

	return st.sidebar.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// notices gathers graph warnings, backend messages and decode issues.
func (m Model) notices() []string {
	var out []string
	for _, w := range m.session.Warnings() {
		out = append(out, w.Message)
	}
	if len(m.results) > 0 {
		r := m.results[m.selected]
		out = append(out, r.Errors...)
		out = append(out, r.Warnings...)
		out = append(out, r.Issues...)
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
