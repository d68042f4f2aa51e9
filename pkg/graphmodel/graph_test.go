package graphmodel

import (
	"errors"
	"image"
	"testing"
)

func mustNode(t *testing.T, g *Graph, x, y int) int {
	t.Helper()
	id, err := g.AddNode(image.Pt(x, y))
	if err != nil {
		t.Fatalf("AddNode(%d,%d): %v", x, y, err)
	}
	return id
}

func mustEdge(t *testing.T, g *Graph, a, b int) int {
	t.Helper()
	id, err := g.AddEdge(a, b)
	if err != nil {
		t.Fatalf("AddEdge(%d,%d): %v", a, b, err)
	}
	return id
}

// ── AddNode ──

func TestAddNodeIDsIncrement(t *testing.T) {
	g := New(false)
	id0 := mustNode(t, g, 0, 0)
	id1 := mustNode(t, g, 10, 0)
	id2 := mustNode(t, g, 20, 0)
	if id0 != 0 || id1 != 1 || id2 != 2 {
		t.Errorf("expected IDs 0,1,2, got %d,%d,%d", id0, id1, id2)
	}
	if g.Node(id1).Distance != -1 {
		t.Errorf("new node distance: expected -1, got %d", g.Node(id1).Distance)
	}
}

func TestAddNodeOccupied(t *testing.T) {
	g := New(false)
	mustNode(t, g, 3, 4)
	if _, err := g.AddNode(image.Pt(3, 4)); !errors.Is(err, ErrPositionOccupied) {
		t.Errorf("expected ErrPositionOccupied, got %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("failed insert must not add a node, got %d nodes", g.NodeCount())
	}
}

func TestAddNodeAtOffGrid(t *testing.T) {
	g := New(false)
	if _, err := g.AddNodeAt(1.25, 3); !errors.Is(err, ErrOffGrid) {
		t.Errorf("expected ErrOffGrid, got %v", err)
	}
	id, err := g.AddNodeAt(2, -7)
	if err != nil {
		t.Fatalf("AddNodeAt(2,-7): %v", err)
	}
	if g.Node(id).Pos != image.Pt(2, -7) {
		t.Errorf("expected (2,-7), got %v", g.Node(id).Pos)
	}
}

func TestNodeNonExistent(t *testing.T) {
	g := New(false)
	if g.Node(999) != nil || g.Node(-1) != nil {
		t.Error("expected nil for non-existent ID")
	}
}

// ── AddEdge ──

func TestAddEdgeUndirected(t *testing.T) {
	g := New(false)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 0)
	mustEdge(t, g, a, b)

	if !g.Adjacent(a, b) || !g.Adjacent(b, a) {
		t.Error("undirected edge should be walkable both ways")
	}
	if g.Degree(a) != 1 || g.Degree(b) != 1 {
		t.Errorf("expected degrees 1,1, got %d,%d", g.Degree(a), g.Degree(b))
	}
	if len(g.Node(b).In) != 0 {
		t.Error("undirected graphs keep In empty")
	}
	if len(g.Index().Segments()) != 1 {
		t.Error("edge segment should be registered in the index")
	}
}

func TestAddEdgeDirected(t *testing.T) {
	g := New(true)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 0)
	mustEdge(t, g, a, b)

	if !g.Adjacent(a, b) {
		t.Error("directed edge should be walkable tail to head")
	}
	if g.Adjacent(b, a) {
		t.Error("directed edge should not be walkable head to tail")
	}
	if g.Degree(a) != 1 || g.Degree(b) != 0 {
		t.Errorf("expected out-degrees 1,0, got %d,%d", g.Degree(a), g.Degree(b))
	}
	if p := g.Predecessors(b); len(p) != 1 || p[0] != a {
		t.Errorf("Predecessors(b): expected [a], got %v", p)
	}
}

func TestAddEdgeRejects(t *testing.T) {
	g := New(false)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 0)
	mustEdge(t, g, a, b)

	if _, err := g.AddEdge(a, a); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("self-loop: expected ErrSelfLoop, got %v", err)
	}
	if _, err := g.AddEdge(b, a); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("reverse duplicate: expected ErrDuplicateEdge, got %v", err)
	}
	if _, err := g.AddEdge(a, 42); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("missing node: expected ErrNodeNotFound, got %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("expected 1 edge, got %d", g.EdgeCount())
	}
}

func TestEdgeBetweenSymmetric(t *testing.T) {
	g := New(true)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 0)
	c := mustNode(t, g, 0, 5)
	id := mustEdge(t, g, a, b)

	if e := g.EdgeBetween(a, b); e == nil || e.ID != id {
		t.Fatalf("EdgeBetween(a,b): expected edge %d, got %v", id, e)
	}
	if g.EdgeBetween(a, b) != g.EdgeBetween(b, a) {
		t.Error("EdgeBetween should ignore argument order")
	}
	if g.EdgeBetween(a, c) != nil {
		t.Error("expected nil for unconnected pair")
	}
}

func TestEdgeOther(t *testing.T) {
	e := &Edge{Tail: 3, Head: 8}
	if e.Other(3) != 8 || e.Other(8) != 3 || e.Other(5) != None {
		t.Errorf("Other: got %d %d %d", e.Other(3), e.Other(8), e.Other(5))
	}
}

// ── Endpoints and teardown ──

func TestSetEndpoints(t *testing.T) {
	g := New(false)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 5)
	if g.Source() != None || g.Sink() != None {
		t.Error("endpoints should start unset")
	}
	if err := g.SetEndpoints(a, 99); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if err := g.SetEndpoints(a, b); err != nil {
		t.Fatalf("SetEndpoints: %v", err)
	}
	if g.Node(a).State != StateEndpoint || g.Node(b).State != StateEndpoint {
		t.Error("endpoints should carry the endpoint marker")
	}
}

func TestClear(t *testing.T) {
	g := New(false)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 0)
	mustEdge(t, g, a, b)
	_ = g.SetEndpoints(a, b)

	g.Clear()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("expected empty graph, got %d nodes %d edges", g.NodeCount(), g.EdgeCount())
	}
	if g.Source() != None || g.Sink() != None {
		t.Error("Clear should reset endpoints")
	}
	if g.EdgeBetween(a, b) != nil {
		t.Error("Clear should empty the pair index")
	}
	if _, ok := g.Index().TryGetNodeAt(image.Pt(0, 0)); ok {
		t.Error("Clear should empty the position index")
	}
	// Cells are reusable after teardown.
	mustNode(t, g, 0, 0)
}

func TestStates(t *testing.T) {
	g := New(false)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 5, 0)
	e := mustEdge(t, g, a, b)
	g.SetNodeState(a, StateOnPath)
	g.SetEdgeState(e, StateOnPath)
	g.SetNodeState(77, StateOnPath) // ignored

	if g.Node(a).State != StateOnPath || g.Edge(e).State != StateOnPath {
		t.Error("state changes should stick")
	}
	if StateOnPath.String() != "on-path" {
		t.Errorf("String: expected on-path, got %s", StateOnPath)
	}

	g.Node(b).Distance = 4
	g.ResetDistances()
	if g.Node(b).Distance != -1 {
		t.Errorf("ResetDistances: expected -1, got %d", g.Node(b).Distance)
	}
}

// ── Spatial queries ──

func TestHitTest(t *testing.T) {
	g := New(false)
	id := mustNode(t, g, 4, 2)
	if n := g.HitTest(image.Pt(4, 2)); n == nil || n.ID != id {
		t.Errorf("expected node %d, got %v", id, n)
	}
	if g.HitTest(image.Pt(0, 0)) != nil {
		t.Error("expected nil for miss")
	}
}

func TestEdgeNear(t *testing.T) {
	g := New(false)
	a := mustNode(t, g, 0, 0)
	b := mustNode(t, g, 10, 0)
	c := mustNode(t, g, 0, 4)
	ab := mustEdge(t, g, a, b)
	ac := mustEdge(t, g, a, c)

	if e := g.EdgeNear(5, 0.4, 0.5); e == nil || e.ID != ab {
		t.Errorf("expected edge %d, got %v", ab, e)
	}
	if e := g.EdgeNear(0.3, 3, 0.5); e == nil || e.ID != ac {
		t.Errorf("expected edge %d, got %v", ac, e)
	}
	if g.EdgeNear(5, 3, 0.5) != nil {
		t.Error("expected nil far from every edge")
	}
}

func TestNodesInRectAndBounds(t *testing.T) {
	g := New(false)
	mustNode(t, g, 0, 0)
	mustNode(t, g, 50, 50)
	mustNode(t, g, 8, -3)

	if nodes := g.NodesInRect(image.Rect(0, -5, 10, 10)); len(nodes) != 2 {
		t.Fatalf("expected 2 nodes in rect, got %d", len(nodes))
	}
	want := image.Rect(0, -3, 51, 51)
	if b := g.Bounds(); b != want {
		t.Errorf("Bounds: expected %v, got %v", want, b)
	}
}
