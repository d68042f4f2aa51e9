package tui

import (
	"fmt"
	"image"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}
	lay := layoutFor(m.Width, m.Height)

	layers := []*lipgloss.Layer{
		barLayer(m.headerText(), lay.header, barStyle, "header"),
		barLayer(m.statusText(), lay.status, statusStyle, "status"),
		m.canvasLayer(lay.canvas),
	}
	if !lay.panel.Empty() {
		layers = append(layers, panelLayer(m.panelLines(lay.panel.Dx()-2), lay.panel))
	}
	if m.form.open {
		layers = append(layers, modalLayer(m.form.view(), m.Width, m.Height))
	}

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(lipgloss.NewCompositor(layers...))

	v := tea.NewView(canvas.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m Model) headerText() string {
	return " graphwalk │ click extend │ right-click/⌫ back │ [f]astest [n]ew [r]eroll [c]entre │ ←↑↓→ +/- │ [q]uit"
}

func (m Model) statusText() string {
	parts := []string{}
	if r := m.game.Round(); r != uuid.Nil {
		parts = append(parts, "round "+r.String()[:8])
	}
	if n := m.game.PathLength(); n >= 0 {
		parts = append(parts, fmt.Sprintf("path %d", n))
	}
	if d := m.game.ShortestDistance(); d >= 0 {
		parts = append(parts, fmt.Sprintf("shortest %d", d))
	} else if m.game.Graph() != nil {
		parts = append(parts, "sink unreachable")
	}
	if m.game.Complete() {
		parts = append(parts, "complete ✓")
	}
	parts = append(parts, fmt.Sprintf("zoom %gx", m.scale()))
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return " " + strings.Join(parts, " │ ")
}

// canvasLayer rasterises the graph into the canvas region.
func (m Model) canvasLayer(r image.Rectangle) *lipgloss.Layer {
	if r.Empty() {
		return lipgloss.NewLayer("").ID("canvas")
	}
	sc := scene{proj: m.projection(), end: -1}
	if m.showFastest {
		sc.fastest = m.fastest
	}
	if s := m.game.Session(); s != nil {
		sc.end = s.End()
	}
	buf := drawCanvas(m.game.Graph(), sc)
	return lipgloss.NewLayer(buf.Render(canvasStyles)).X(r.Min.X).Y(r.Min.Y).Z(0).ID("canvas")
}

func (m Model) panelLines(width int) []string {
	sep := panelDimStyle.Render(strings.Repeat("─", max(width-1, 0)))
	lines := []string{panelTitleStyle.Render("GRAPH"), sep}
	g := m.game.Graph()
	if g == nil {
		lines = append(lines, panelDimStyle.Render("  (generating)"))
	} else {
		kind := "undirected"
		if g.Directed() {
			kind = "directed"
		}
		lines = append(lines,
			kv("nodes", fmt.Sprint(g.NodeCount())),
			kv("edges", fmt.Sprint(g.EdgeCount())),
			kv("kind", kind),
			kv("degree", fmt.Sprintf("%s..%s", m.params.MinDegree, m.params.MaxDegree)),
			kv("crossings", crossingsString(m.params.MaxCrossings)),
			kv("source", fmt.Sprint(g.Source())),
			kv("sink", fmt.Sprint(g.Sink())),
		)
	}

	lines = append(lines, "", panelTitleStyle.Render("WALK"), sep)
	if s := m.game.Session(); s != nil {
		walk := s.Walk()
		const shown = 6
		if len(walk) > shown {
			lines = append(lines, panelDimStyle.Render(fmt.Sprintf("  … %d earlier", len(walk)-shown)))
			walk = walk[len(walk)-shown:]
		}
		for _, id := range walk {
			lines = append(lines, panelTextStyle.Render(fmt.Sprintf("  → %d", id)))
		}
	}

	lines = append(lines, "", panelTitleStyle.Render("HELP"), sep,
		panelTextStyle.Render("  left click: extend walk"),
		panelTextStyle.Render("  right click, ⌫: back"),
		panelTextStyle.Render("  f: fastest path overlay"),
		panelTextStyle.Render("  n: new graph  r: reroll"),
	)
	return lines
}

func kv(k, v string) string {
	return panelKeyStyle.Render(fmt.Sprintf("  %-10s", k)) + panelTextStyle.Render(v)
}

// barLayer renders a one-row bar across r.
func barLayer(text string, r image.Rectangle, style lipgloss.Style, id string) *lipgloss.Layer {
	if r.Empty() {
		return lipgloss.NewLayer("").ID(id)
	}
	return lipgloss.NewLayer(style.Width(r.Dx()).MaxWidth(r.Dx()).Render(text)).
		X(r.Min.X).Y(r.Min.Y).Z(1).ID(id)
}

// panelLayer pads lines to fill r, with a separator down the left edge.
func panelLayer(lines []string, r image.Rectangle) *lipgloss.Layer {
	w, h := r.Dx(), r.Dy()
	out := make([]string, h)
	for i := range out {
		var l string
		if i < len(lines) {
			l = lines[i]
		}
		if pad := w - 2 - lipgloss.Width(l); pad > 0 {
			l += panelStyle.Render(strings.Repeat(" ", pad))
		}
		out[i] = panelSepStyle.Render("│") + panelStyle.Render(" ") + l
	}
	return lipgloss.NewLayer(strings.Join(out, "\n")).X(r.Min.X).Y(r.Min.Y).Z(1).ID("panel")
}

// modalLayer centres content on the terminal above everything else.
func modalLayer(content string, termW, termH int) *lipgloss.Layer {
	x := max((termW-lipgloss.Width(content))/2, 0)
	y := max((termH-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(100).ID("form")
}
