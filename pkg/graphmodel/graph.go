package graphmodel

import (
	"errors"
	"fmt"
	"image"

	"github.com/wesen/graphwalk/pkg/spatial"
)

// Sentinel errors for store operations.
var (
	ErrPositionOccupied = errors.New("graphmodel: position occupied")
	ErrOffGrid          = errors.New("graphmodel: position not on integral grid")
	ErrSelfLoop         = errors.New("graphmodel: self-loop not allowed")
	ErrNodeNotFound     = errors.New("graphmodel: node not found")
	ErrDuplicateEdge    = errors.New("graphmodel: nodes already connected")
)

// None marks an unset source or sink.
const None = -1

// Node is a vertex on the grid. IDs are arena indices and stay valid until
// the graph is cleared.
type Node struct {
	ID  int
	Pos image.Point

	// Out holds the walkable neighbours. For undirected graphs it is the
	// single symmetric adjacency list.
	Out []int
	// In holds predecessors; only populated for directed graphs.
	In []int

	Distance int // BFS label, -1 until computed
	State    State
}

// Edge connects Tail to Head. Direction only matters in directed graphs.
type Edge struct {
	ID        int
	Tail      int
	Head      int
	Crossings int
	State     State
}

// Other returns the endpoint of e that is not id, or None if e is not
// incident to id.
func (e *Edge) Other(id int) int {
	switch id {
	case e.Tail:
		return e.Head
	case e.Head:
		return e.Tail
	}
	return None
}

type pairKey struct{ lo, hi int }

func keyOf(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Graph owns every node and edge of one generated round.
type Graph struct {
	directed bool
	nodes    []*Node
	edges    []*Edge
	pairs    map[pairKey]int
	index    *spatial.Index

	source int
	sink   int
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		pairs:    make(map[pairKey]int),
		index:    spatial.New(),
		source:   None,
		sink:     None,
	}
}

// Directed reports whether edge direction is significant.
func (g *Graph) Directed() bool { return g.directed }

// Index exposes the geometry index for read-only queries.
func (g *Graph) Index() *spatial.Index { return g.index }

// ── Node operations ──

// AddNode places a node at pos and returns its ID.
func (g *Graph) AddNode(pos image.Point) (int, error) {
	id := len(g.nodes)
	if !g.index.Insert(pos, id) {
		return None, fmt.Errorf("AddNode: %v: %w", pos, ErrPositionOccupied)
	}
	g.nodes = append(g.nodes, &Node{ID: id, Pos: pos, Distance: -1})
	return id, nil
}

// AddNodeAt is AddNode for callers holding float coordinates.
func (g *Graph) AddNodeAt(x, y float64) (int, error) {
	p, ok := spatial.Snap(x, y)
	if !ok {
		return None, fmt.Errorf("AddNodeAt: (%g,%g): %w", x, y, ErrOffGrid)
	}
	return g.AddNode(p)
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id int) *Node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// HasNode reports whether id names a node of g.
func (g *Graph) HasNode(id int) bool {
	return id >= 0 && id < len(g.nodes)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Neighbors returns the nodes reachable in one step from id.
func (g *Graph) Neighbors(id int) []int {
	if n := g.Node(id); n != nil {
		return n.Out
	}
	return nil
}

// Predecessors returns the nodes that reach id in one step.
func (g *Graph) Predecessors(id int) []int {
	n := g.Node(id)
	if n == nil {
		return nil
	}
	if g.directed {
		return n.In
	}
	return n.Out
}

// Degree is the number of walkable neighbours: the out-degree for directed
// graphs.
func (g *Graph) Degree(id int) int {
	return len(g.Neighbors(id))
}

// SetNodeState changes the display state of a node. Unknown IDs are ignored.
func (g *Graph) SetNodeState(id int, s State) {
	if n := g.Node(id); n != nil {
		n.State = s
	}
}

// ResetDistances marks every node unlabelled.
func (g *Graph) ResetDistances() {
	for _, n := range g.nodes {
		n.Distance = -1
	}
}

// ── Edge operations ──

// AddEdge connects tail to head and registers the segment in the index.
// Crossing bookkeeping is the caller's job.
func (g *Graph) AddEdge(tail, head int) (int, error) {
	if tail == head {
		return None, fmt.Errorf("AddEdge: %d: %w", tail, ErrSelfLoop)
	}
	t, h := g.Node(tail), g.Node(head)
	if t == nil || h == nil {
		return None, fmt.Errorf("AddEdge: %d-%d: %w", tail, head, ErrNodeNotFound)
	}
	k := keyOf(tail, head)
	if _, dup := g.pairs[k]; dup {
		return None, fmt.Errorf("AddEdge: %d-%d: %w", tail, head, ErrDuplicateEdge)
	}

	id := len(g.edges)
	g.edges = append(g.edges, &Edge{ID: id, Tail: tail, Head: head})
	g.pairs[k] = id
	t.Out = append(t.Out, head)
	if g.directed {
		h.In = append(h.In, tail)
	} else {
		h.Out = append(h.Out, tail)
	}
	g.index.AddSegment(id, t.Pos, h.Pos)
	return id, nil
}

// Edge returns the edge with the given ID, or nil.
func (g *Graph) Edge(id int) *Edge {
	if id < 0 || id >= len(g.edges) {
		return nil
	}
	return g.edges[id]
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgeBetween returns the edge joining a and b in either order, or nil.
func (g *Graph) EdgeBetween(a, b int) *Edge {
	if id, ok := g.pairs[keyOf(a, b)]; ok {
		return g.edges[id]
	}
	return nil
}

// Adjacent reports whether a walk may step from a to b.
func (g *Graph) Adjacent(a, b int) bool {
	e := g.EdgeBetween(a, b)
	if e == nil {
		return false
	}
	return !g.directed || e.Tail == a
}

// SetEdgeState changes the display state of an edge. Unknown IDs are ignored.
func (g *Graph) SetEdgeState(id int, s State) {
	if e := g.Edge(id); e != nil {
		e.State = s
	}
}

// ── Endpoints ──

// Source returns the start node, or None before generation finishes.
func (g *Graph) Source() int { return g.source }

// Sink returns the goal node, or None before generation finishes.
func (g *Graph) Sink() int { return g.sink }

// SetEndpoints records the source and sink and marks both as endpoints.
func (g *Graph) SetEndpoints(source, sink int) error {
	if !g.HasNode(source) || !g.HasNode(sink) {
		return fmt.Errorf("SetEndpoints: %d,%d: %w", source, sink, ErrNodeNotFound)
	}
	g.source, g.sink = source, sink
	g.nodes[source].State = StateEndpoint
	g.nodes[sink].State = StateEndpoint
	return nil
}

// Clear destroys every node and edge and forgets the endpoints.
func (g *Graph) Clear() {
	g.nodes = nil
	g.edges = nil
	clear(g.pairs)
	g.index.Reset()
	g.source, g.sink = None, None
}
