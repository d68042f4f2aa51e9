// Package graphmodel stores a grid-embedded graph: nodes on integer cells,
// straight edges between them, and a symmetric pair lookup. Node and edge
// IDs are arena indices.
package graphmodel

import (
	"image"
	"math"
)

// HitTest returns the node occupying pt, or nil.
func (g *Graph) HitTest(pt image.Point) *Node {
	if id, ok := g.index.TryGetNodeAt(pt); ok {
		return g.nodes[id]
	}
	return nil
}

// EdgeNear returns the edge whose segment passes closest to (x, y), provided
// it is within tol. Ties go to the earlier edge.
func (g *Graph) EdgeNear(x, y, tol float64) *Edge {
	var best *Edge
	bestD := tol
	for _, e := range g.edges {
		a, b := g.nodes[e.Tail].Pos, g.nodes[e.Head].Pos
		if d := pointSegmentDist(x, y, a, b); d <= bestD {
			if best == nil || d < bestD {
				best, bestD = e, d
			}
		}
	}
	return best
}

// NodesInRect returns the nodes whose cell lies inside r, in insertion order.
func (g *Graph) NodesInRect(r image.Rectangle) []*Node {
	var result []*Node
	for _, n := range g.nodes {
		if n.Pos.In(r) {
			result = append(result, n)
		}
	}
	return result
}

// Bounds returns the smallest rectangle containing every node cell.
func (g *Graph) Bounds() image.Rectangle {
	if len(g.nodes) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: g.nodes[0].Pos, Max: g.nodes[0].Pos.Add(image.Pt(1, 1))}
	for _, n := range g.nodes[1:] {
		r = r.Union(image.Rectangle{Min: n.Pos, Max: n.Pos.Add(image.Pt(1, 1))})
	}
	return r
}

func pointSegmentDist(x, y float64, a, b image.Point) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-ax, y-ay)
	}
	t := ((x-ax)*dx + (y-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(ax+t*dx), y-(ay+t*dy))
}
