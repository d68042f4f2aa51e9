// Package paths labels graph nodes with BFS distances and reconstructs
// shortest paths from those labels.
package paths

import (
	"errors"
	"fmt"

	"github.com/wesen/graphwalk/pkg/graphmodel"
)

var (
	ErrGraphNil     = errors.New("paths: graph is nil")
	ErrNodeNotFound = errors.New("paths: node not found")
	ErrUnreachable  = errors.New("paths: sink unreachable from source")
	// ErrStaleDistances means the labels were not computed from the
	// requested source, or for this graph.
	ErrStaleDistances = errors.New("paths: distances do not match graph or source")
)

// Unset labels a node BFS never reached.
const Unset = -1

// Distances holds one BFS label per node ID.
type Distances []int

// Of returns the label of id, or Unset for unknown IDs.
func (d Distances) Of(id int) int {
	if id < 0 || id >= len(d) {
		return Unset
	}
	return d[id]
}

// Reachable reports whether id received a label.
func (d Distances) Reachable(id int) bool { return d.Of(id) >= 0 }

type walker struct {
	g     *graphmodel.Graph
	queue []int
	dist  Distances
}

// ComputeDistances runs BFS from source along walkable edges. Every node's
// Distance field is overwritten; unreachable nodes keep Unset.
func ComputeDistances(g *graphmodel.Graph, source int) (Distances, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasNode(source) {
		return nil, fmt.Errorf("ComputeDistances: %d: %w", source, ErrNodeNotFound)
	}

	n := g.NodeCount()
	w := &walker{
		g:     g,
		queue: make([]int, 0, n),
		dist:  make(Distances, n),
	}
	for i := range w.dist {
		w.dist[i] = Unset
	}
	w.enqueue(source, 0)
	w.loop()

	g.ResetDistances()
	for id, d := range w.dist {
		g.Node(id).Distance = d
	}
	return w.dist, nil
}

func (w *walker) enqueue(id, d int) {
	w.dist[id] = d
	w.queue = append(w.queue, id)
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		for _, nbr := range w.g.Neighbors(id) {
			if w.dist[nbr] == Unset {
				w.enqueue(nbr, w.dist[id]+1)
			}
		}
	}
}
