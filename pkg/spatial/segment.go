package spatial

import (
	"image"
	"math"
	"sort"
)

// HitKind tells whether a segment query hit a node or an edge.
type HitKind int

const (
	HitNode HitKind = iota
	HitEdge
)

func (k HitKind) String() string {
	if k == HitNode {
		return "node"
	}
	return "edge"
}

// Vec is a float position, used for hit points that fall between cells.
type Vec struct {
	X, Y float64
}

func vecOf(p image.Point) Vec { return Vec{float64(p.X), float64(p.Y)} }

// Hit is one result of a segment query.
type Hit struct {
	Kind  HitKind
	ID    int
	Point Vec
	Dist  float64 // distance from the query origin to Point
}

// SegmentHits returns every node disc and edge segment touched by the
// segment from→to, ordered by distance from from. Nodes and edges at the
// endpoints are included; callers decide which hits matter.
func (ix *Index) SegmentHits(from, to image.Point) []Hit {
	var hits []Hit
	length := Distance(from, to)

	for p, id := range ix.cells {
		if d, ok := discEntry(from, to, length, p); ok {
			hits = append(hits, Hit{Kind: HitNode, ID: id, Point: along(from, to, length, d), Dist: d})
		}
	}
	for _, s := range ix.segments {
		if pt, ok := Intersection(from, to, s.A, s.B); ok {
			hits = append(hits, Hit{Kind: HitEdge, ID: s.ID, Point: pt, Dist: dist(vecOf(from), pt)})
		}
	}

	// Map iteration is unordered; the secondary keys keep results stable.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Dist != hits[j].Dist {
			return hits[i].Dist < hits[j].Dist
		}
		if hits[i].Kind != hits[j].Kind {
			return hits[i].Kind < hits[j].Kind
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}

// discEntry reports whether the segment passes within NodeRadius of c and
// returns the distance from a at which it enters the disc.
func discEntry(a, b image.Point, length float64, c image.Point) (float64, bool) {
	if length == 0 {
		d := Distance(a, c)
		return 0, d <= NodeRadius
	}
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	t := ((float64(c.X-a.X))*dx + (float64(c.Y-a.Y))*dy) / (length * length)
	t = math.Max(0, math.Min(1, t))
	px, py := float64(a.X)+t*dx, float64(a.Y)+t*dy
	off := math.Hypot(float64(c.X)-px, float64(c.Y)-py)
	if off > NodeRadius {
		return 0, false
	}
	entry := t*length - math.Sqrt(NodeRadius*NodeRadius-off*off)
	return math.Max(0, entry), true
}

func along(a, b image.Point, length, d float64) Vec {
	if length == 0 {
		return vecOf(a)
	}
	t := d / length
	return Vec{
		X: float64(a.X) + t*float64(b.X-a.X),
		Y: float64(a.Y) + t*float64(b.Y-a.Y),
	}
}

// Intersection reports whether segments ab and cd share at least one
// point and returns the shared point closest to a. Orientation tests run
// on integers so the answer is exact.
func Intersection(a, b, c, d image.Point) (Vec, bool) {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if o1 == 0 && o2 == 0 {
		return collinearOverlap(a, b, c, d)
	}
	if sign(o1)*sign(o2) > 0 || sign(o3)*sign(o4) > 0 {
		return Vec{}, false
	}

	// Non-parallel: solve a + t(b-a) on line cd.
	rx, ry := int64(b.X-a.X), int64(b.Y-a.Y)
	sx, sy := int64(d.X-c.X), int64(d.Y-c.Y)
	den := rx*sy - ry*sx
	if den == 0 {
		return Vec{}, false
	}
	num := int64(c.X-a.X)*sy - int64(c.Y-a.Y)*sx
	t := float64(num) / float64(den)
	return Vec{X: float64(a.X) + t*float64(rx), Y: float64(a.Y) + t*float64(ry)}, true
}

// collinearOverlap handles segments lying on one line.
func collinearOverlap(a, b, c, d image.Point) (Vec, bool) {
	if a == b {
		if onSegment(c, d, a) {
			return vecOf(a), true
		}
		return Vec{}, false
	}
	// Project c and d onto ab as parameters along the segment.
	rx, ry := float64(b.X-a.X), float64(b.Y-a.Y)
	l2 := rx*rx + ry*ry
	tc := (float64(c.X-a.X)*rx + float64(c.Y-a.Y)*ry) / l2
	td := (float64(d.X-a.X)*rx + float64(d.Y-a.Y)*ry) / l2
	lo := math.Max(0, math.Min(tc, td))
	hi := math.Min(1, math.Max(tc, td))
	if lo > hi {
		return Vec{}, false
	}
	return Vec{X: float64(a.X) + lo*rx, Y: float64(a.Y) + lo*ry}, true
}

func onSegment(a, b, p image.Point) bool {
	return orient(a, b, p) == 0 &&
		min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

// orient is the z component of (b-a) x (p-a).
func orient(a, b, p image.Point) int64 {
	return int64(b.X-a.X)*int64(p.Y-a.Y) - int64(b.Y-a.Y)*int64(p.X-a.X)
}

func sign(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func dist(a, b Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
