package tui

import (
	"image"

	"github.com/wesen/graphwalk/pkg/cellbuf"
	"github.com/wesen/graphwalk/pkg/drawutil"
	"github.com/wesen/graphwalk/pkg/graphmodel"
)

// Stroke depths, back to front.
const (
	zLattice cellbuf.Depth = iota
	zEdge
	zFastest
	zPath
	zNode
)

// scene is everything drawCanvas needs besides the graph.
type scene struct {
	proj    drawutil.Projection
	fastest map[int]bool // edge IDs of the overlay path
	end     int          // current end of the walk
}

// drawCanvas rasterises g into a buffer the size of the projection.
func drawCanvas(g *graphmodel.Graph, sc scene) *cellbuf.Buffer {
	buf := cellbuf.New(sc.proj.W, sc.proj.H, styleBG)
	drawutil.DrawLattice(buf, sc.proj, styleLattice)
	if g == nil {
		return buf
	}
	view := image.Rect(0, 0, buf.W, buf.H)

	for _, e := range g.Edges() {
		a := sc.proj.ToScreen(g.Node(e.Tail).Pos)
		b := sc.proj.ToScreen(g.Node(e.Head).Pos)
		if !segmentBox(a, b).Overlaps(view) {
			continue
		}
		style, z := styleEdge, zEdge
		switch {
		case e.State == graphmodel.StateOnPath:
			style, z = styleEdgePath, zPath
		case sc.fastest[e.ID]:
			style, z = styleEdgeFastest, zFastest
		}
		if g.Directed() {
			drawutil.DrawArrowSegment(buf, a, b, style, z)
		} else {
			drawutil.DrawSegment(buf, a, b, style, z)
		}
	}

	for _, n := range g.Nodes() {
		s := sc.proj.ToScreen(n.Pos)
		ch, style := nodeGlyph(g, n, sc.end)
		buf.Plot(s.X, s.Y, ch, style, zNode)
	}
	return buf
}

// nodeGlyph picks the character and style for n. The end of the walk is
// highlighted whatever its state.
func nodeGlyph(g *graphmodel.Graph, n *graphmodel.Node, end int) (rune, cellbuf.StyleKey) {
	ch, style := '○', styleNode
	switch {
	case n.ID == g.Source():
		ch, style = 'S', styleNodeEndpoint
	case n.ID == g.Sink():
		ch, style = 'T', styleNodeEndpoint
	case n.State == graphmodel.StateOnPath:
		ch, style = '●', styleNodePath
	}
	if n.ID == end {
		style = styleNodeEnd
		if ch == '●' {
			ch = '◉'
		}
	}
	return ch, style
}

// segmentBox is the cell bounding box of a-b.
func segmentBox(a, b image.Point) image.Rectangle {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// edgeSet collects the edges along a node path.
func edgeSet(g *graphmodel.Graph, path []int) map[int]bool {
	if len(path) < 2 {
		return nil
	}
	set := make(map[int]bool, len(path)-1)
	for i := 1; i < len(path); i++ {
		if e := g.EdgeBetween(path[i-1], path[i]); e != nil {
			set[e.ID] = true
		}
	}
	return set
}
