package tui

import (
	"fmt"
	"image"

	tea "charm.land/bubbletea/v2"
	"github.com/wesen/graphwalk/pkg/drawutil"
	"github.com/wesen/graphwalk/pkg/session"
	"go.uber.org/zap"
)

// panStep is how many rows an arrow key moves the camera.
const panStep = 3

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m = m.applyFocus()

	case drainMsg:
		return m.drain(), nil

	case tea.KeyMsg:
		if m.form.open {
			return m.handleFormKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		if m.form.open {
			return m, nil
		}
		return handleMouse(m, msg, layoutFor(m.Width, m.Height).canvas), nil
	}
	return m, nil
}

// drain runs queued generation and recentres on the new graph.
func (m Model) drain() Model {
	m.surface.reset()
	g, err := m.game.Drain()
	if err != nil {
		m.status = "generation failed: " + err.Error()
		m.log.Warn("drain failed", zap.Error(err))
		return m
	}
	if g == nil {
		return m
	}
	b := g.Bounds()
	m.CamX = float64(b.Min.X+b.Max.X-1) / 2
	m.CamY = float64(b.Min.Y+b.Max.Y-1) / 2
	m.fastest = nil
	m.status = fmt.Sprintf("new graph: %d nodes, %d edges", m.surface.nodes, m.surface.edges)
	m = m.refreshFastest()
	return m.applyFocus()
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := panStep / m.scale()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up":
		m.CamY -= step
	case "down":
		m.CamY += step
	case "left":
		m.CamX -= step / float64(m.cellWidth)
	case "right":
		m.CamX += step / float64(m.cellWidth)

	case "+", "=":
		m.zoom = min(m.zoom+1, len(zoomLevels)-1)
	case "-", "_":
		m.zoom = max(m.zoom-1, 0)

	case "c":
		if g := m.game.Graph(); g != nil {
			b := g.Bounds()
			m.CamX = float64(b.Min.X+b.Max.X-1) / 2
			m.CamY = float64(b.Min.Y+b.Max.Y-1) / 2
		}

	case "f":
		m.showFastest = !m.showFastest
		m = m.refreshFastest()

	case "backspace", "u":
		m = m.click(session.NoTarget, false)

	case "r":
		m.game.Request(m.params)
		m.status = "generating…"
		return m, drainCmd

	case "n":
		var cmd tea.Cmd
		m.form, cmd = openForm(m.params)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc", "escape":
		m.form.open = false
		return m, nil
	case "tab", "down":
		m.form, cmd = m.form.move(1)
		return m, cmd
	case "shift+tab", "up":
		m.form, cmd = m.form.move(-1)
		return m, cmd
	case "enter":
		p, err := m.form.params(m.params)
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.open = false
		m.params = p
		m.game.Request(p)
		m.status = "generating…"
		m.log.Debug("params submitted", zap.Int("nodes", p.NodeCount), zap.Bool("directed", p.Directed))
		return m, drainCmd
	}
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// click forwards a click to the game and keeps the camera on the walk.
func (m Model) click(t session.Target, primary bool) Model {
	if !m.game.Click(t, primary) {
		return m
	}
	switch {
	case m.game.Complete():
		m.status = fmt.Sprintf("sink reached in %d steps (shortest %d)",
			m.game.PathLength(), m.game.ShortestDistance())
	default:
		m.status = ""
	}
	return m.applyFocus()
}

// refreshFastest computes the overlay once per round.
func (m Model) refreshFastest() Model {
	if !m.showFastest {
		return m
	}
	if m.fastest != nil && m.fastestRound == m.game.Round() {
		return m
	}
	path, err := m.game.FastestPath()
	if err != nil {
		m.fastest = map[int]bool{}
		m.status = "sink unreachable"
	} else {
		m.fastest = edgeSet(m.game.Graph(), path)
	}
	m.fastestRound = m.game.Round()
	return m
}

func (m Model) scale() float64 { return zoomLevels[m.zoom] }

// projection maps the graph onto the canvas region.
func (m Model) projection() drawutil.Projection {
	r := layoutFor(m.Width, m.Height).canvas
	return drawutil.Projection{
		CamX: m.CamX, CamY: m.CamY,
		W: r.Dx(), H: r.Dy(),
		Scale:     m.scale(),
		CellWidth: m.cellWidth,
	}
}

// applyFocus recentres on the focused node when it sits outside the inner
// part of the canvas.
func (m Model) applyFocus() Model {
	id, ok := m.surface.takeFocus()
	g := m.game.Graph()
	if !ok || g == nil || !g.HasNode(id) {
		return m
	}
	proj := m.projection()
	if proj.W == 0 || proj.H == 0 {
		// No canvas yet; retry once the window size is known.
		m.surface.FocusOn(id)
		return m
	}
	inner := image.Rect(0, 0, proj.W, proj.H).Inset(min(proj.W, proj.H) / 6)
	pos := g.Node(id).Pos
	if !proj.ToScreen(pos).In(inner) {
		m.CamX, m.CamY = float64(pos.X), float64(pos.Y)
	}
	return m
}
