package spatial

import (
	"image"
	"math"
	"testing"
)

func near(a, b Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// ── Intersection ──

func TestIntersectionCrossing(t *testing.T) {
	pt, ok := Intersection(image.Pt(0, 0), image.Pt(4, 4), image.Pt(0, 4), image.Pt(4, 0))
	if !ok {
		t.Fatal("diagonals should intersect")
	}
	if !near(pt, Vec{2, 2}) {
		t.Errorf("expected (2,2), got %v", pt)
	}
}

func TestIntersectionParallel(t *testing.T) {
	if _, ok := Intersection(image.Pt(0, 0), image.Pt(4, 0), image.Pt(0, 1), image.Pt(4, 1)); ok {
		t.Error("parallel segments should not intersect")
	}
}

func TestIntersectionTouchingEndpoint(t *testing.T) {
	pt, ok := Intersection(image.Pt(0, 0), image.Pt(4, 0), image.Pt(4, 0), image.Pt(4, 3))
	if !ok || !near(pt, Vec{4, 0}) {
		t.Errorf("expected touch at (4,0), got %v %v", pt, ok)
	}
}

func TestIntersectionCollinearOverlap(t *testing.T) {
	pt, ok := Intersection(image.Pt(0, 0), image.Pt(6, 0), image.Pt(8, 0), image.Pt(3, 0))
	if !ok || !near(pt, Vec{3, 0}) {
		t.Errorf("expected overlap starting at (3,0), got %v %v", pt, ok)
	}
	if _, ok := Intersection(image.Pt(0, 0), image.Pt(2, 0), image.Pt(3, 0), image.Pt(5, 0)); ok {
		t.Error("disjoint collinear segments should not intersect")
	}
}

func TestIntersectionMiss(t *testing.T) {
	if _, ok := Intersection(image.Pt(0, 0), image.Pt(1, 1), image.Pt(3, 0), image.Pt(2, 5)); ok {
		t.Error("segments far apart should not intersect")
	}
}

// ── SegmentHits ──

func TestSegmentHitsOrderedByDistance(t *testing.T) {
	ix := New()
	ix.Insert(image.Pt(0, 0), 0)
	ix.Insert(image.Pt(6, 0), 1)
	ix.Insert(image.Pt(3, 0), 2)
	ix.Insert(image.Pt(3, 5), 3) // off the line
	ix.AddSegment(7, image.Pt(1, -2), image.Pt(1, 2))

	hits := ix.SegmentHits(image.Pt(0, 0), image.Pt(6, 0))
	if len(hits) != 4 {
		t.Fatalf("expected 4 hits, got %d: %+v", len(hits), hits)
	}

	want := []struct {
		kind HitKind
		id   int
	}{{HitNode, 0}, {HitEdge, 7}, {HitNode, 2}, {HitNode, 1}}
	for i, w := range want {
		if hits[i].Kind != w.kind || hits[i].ID != w.id {
			t.Errorf("hit %d: expected %s %d, got %s %d", i, w.kind, w.id, hits[i].Kind, hits[i].ID)
		}
	}
	if math.Abs(hits[2].Dist-2.5) > 1e-9 {
		t.Errorf("node 2 entry: expected 2.5, got %f", hits[2].Dist)
	}
}

func TestSegmentHitsGrazingDisc(t *testing.T) {
	ix := New()
	ix.Insert(image.Pt(2, 1), 0)
	// Passes (2,1) at a perpendicular distance of 1: outside the disc.
	if hits := ix.SegmentHits(image.Pt(0, 0), image.Pt(4, 0)); len(hits) != 0 {
		t.Errorf("expected no hits, got %+v", hits)
	}
}
