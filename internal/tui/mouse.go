package tui

import (
	"image"
	"math"

	tea "charm.land/bubbletea/v2"
	"github.com/wesen/graphwalk/pkg/drawutil"
	"github.com/wesen/graphwalk/pkg/graphmodel"
	"github.com/wesen/graphwalk/pkg/session"
	"github.com/wesen/graphwalk/pkg/spatial"
)

// handleMouse turns canvas clicks into walk steps: left extends, right
// backtracks.
func handleMouse(m Model, msg tea.MouseMsg, canvas image.Rectangle) Model {
	mouse := msg.Mouse()
	m.MouseX = mouse.X
	m.MouseY = mouse.Y

	if !image.Pt(mouse.X, mouse.Y).In(canvas) {
		return m
	}
	click, ok := msg.(tea.MouseClickMsg)
	if !ok {
		return m
	}
	switch click.Mouse().Button {
	case tea.MouseLeft:
		t := pick(m.game.Graph(), m.projection(), image.Pt(mouse.X, mouse.Y).Sub(canvas.Min))
		m = m.click(t, true)
	case tea.MouseRight:
		m = m.click(session.NoTarget, false)
	}
	return m
}

// pick resolves a canvas cell to a node, else an edge, else nothing.
func pick(g *graphmodel.Graph, proj drawutil.Projection, cell image.Point) session.Target {
	if g == nil {
		return session.NoTarget
	}
	x, y := proj.ToWorld(cell)
	tol := math.Max(spatial.NodeRadius, proj.CellSize())
	if n := nodeNear(g, x, y, tol); n != nil {
		return session.NodeTarget(n.ID)
	}
	if e := g.EdgeNear(x, y, tol/2); e != nil {
		return session.EdgeTarget(e.ID)
	}
	return session.NoTarget
}

// nodeNear returns the node closest to (x, y) within tol. A node on the
// snapped cell wins outright.
func nodeNear(g *graphmodel.Graph, x, y, tol float64) *graphmodel.Node {
	p := image.Pt(int(math.Round(x)), int(math.Round(y)))
	if n := g.HitTest(p); n != nil && math.Hypot(x-float64(p.X), y-float64(p.Y)) <= tol {
		return n
	}
	var best *graphmodel.Node
	bestD := tol
	for _, n := range g.Nodes() {
		if d := math.Hypot(x-float64(n.Pos.X), y-float64(n.Pos.Y)); d <= bestD {
			best, bestD = n, d
		}
	}
	return best
}
