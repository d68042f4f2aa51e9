// Package spatial indexes graph elements laid out on an integer grid.
//
// Nodes occupy single grid cells and are treated as discs of radius
// NodeRadius for segment queries. Edges are straight segments between two
// occupied cells. The index is read-only to everyone except the graph
// store that owns it.
package spatial

import (
	"image"
	"math"
)

// NodeRadius is the collision radius of a node, in cells.
const NodeRadius = 0.5

// snapEpsilon is the tolerance used when deciding whether a float
// coordinate already sits on the grid.
const snapEpsilon = 1e-6

// Segment is an edge registered in the index.
type Segment struct {
	ID   int
	A, B image.Point
}

// Index maps occupied cells to node IDs and keeps the edge segments
// drawn between them.
type Index struct {
	cells    map[image.Point]int
	segments []Segment
}

// New creates an empty index.
func New() *Index {
	return &Index{cells: make(map[image.Point]int)}
}

// Insert registers node id at p. It reports false if p is already taken.
func (ix *Index) Insert(p image.Point, id int) bool {
	if _, taken := ix.cells[p]; taken {
		return false
	}
	ix.cells[p] = id
	return true
}

// AddSegment registers an edge segment for later segment queries.
func (ix *Index) AddSegment(id int, a, b image.Point) {
	ix.segments = append(ix.segments, Segment{ID: id, A: a, B: b})
}

// Reset empties the index.
func (ix *Index) Reset() {
	clear(ix.cells)
	ix.segments = ix.segments[:0]
}

// Len returns the number of occupied cells.
func (ix *Index) Len() int {
	return len(ix.cells)
}

// Segments returns the registered segments in insertion order.
func (ix *Index) Segments() []Segment {
	return ix.segments
}

// TryGetNodeAt returns the node occupying p, if any.
func (ix *Index) TryGetNodeAt(p image.Point) (int, bool) {
	id, ok := ix.cells[p]
	return id, ok
}

// HasNeighborWithin reports whether any node other than one at p itself
// lies within the Chebyshev neighbourhood of radius r around p.
func (ix *Index) HasNeighborWithin(p image.Point, r int) bool {
	if r <= 0 {
		return false
	}
	side := 2*r + 1
	// Sparse index: scanning the nodes is cheaper than scanning the square.
	if side*side > len(ix.cells) {
		for q := range ix.cells {
			if q != p && Chebyshev(p, q) <= r {
				return true
			}
		}
		return false
	}
	for x := p.X - r; x <= p.X+r; x++ {
		for y := p.Y - r; y <= p.Y+r; y++ {
			if x == p.X && y == p.Y {
				continue
			}
			if _, ok := ix.cells[image.Pt(x, y)]; ok {
				return true
			}
		}
	}
	return false
}

// Snap converts a float position to a grid cell. It reports false when the
// position is not integral.
func Snap(x, y float64) (image.Point, bool) {
	rx, ry := math.Round(x), math.Round(y)
	if math.Abs(x-rx) > snapEpsilon || math.Abs(y-ry) > snapEpsilon {
		return image.Point{}, false
	}
	return image.Pt(int(rx), int(ry)), true
}

// Chebyshev returns the grid distance max(|dx|, |dy|).
func Chebyshev(a, b image.Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// Distance returns the Euclidean distance between two cells.
func Distance(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
