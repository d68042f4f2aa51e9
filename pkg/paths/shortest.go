package paths

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/wesen/graphwalk/pkg/graphmodel"
)

func checkEndpoints(method string, g *graphmodel.Graph, dist Distances, source, sink int) error {
	if g == nil {
		return ErrGraphNil
	}
	if !g.HasNode(source) || !g.HasNode(sink) {
		return fmt.Errorf("%s: %d,%d: %w", method, source, sink, ErrNodeNotFound)
	}
	if len(dist) != g.NodeCount() || dist.Of(source) != 0 {
		return fmt.Errorf("%s: %w", method, ErrStaleDistances)
	}
	if !dist.Reachable(sink) {
		return fmt.Errorf("%s: %d: %w", method, sink, ErrUnreachable)
	}
	return nil
}

// ShortestPath walks back from sink, each step picking uniformly among
// predecessors exactly one level closer to source. The result runs
// source→sink and differs between calls when several shortest paths exist.
// A nil rng falls back to a time-seeded source.
func ShortestPath(g *graphmodel.Graph, dist Distances, source, sink int, rng *rand.Rand) ([]int, error) {
	if err := checkEndpoints("ShortestPath", g, dist, source, sink); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	path := make([]int, 0, dist[sink]+1)
	path = append(path, sink)
	var step []int
	for cur := sink; cur != source; {
		step = closer(g, dist, cur, step[:0])
		if len(step) == 0 {
			return nil, fmt.Errorf("ShortestPath: no predecessor of %d: %w", cur, ErrStaleDistances)
		}
		cur = step[rng.Intn(len(step))]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path, nil
}

// AllShortestPaths enumerates every shortest source→sink path. Partial
// paths are grown one level at a time from the sink, branching on each
// qualifying predecessor, so the count can grow exponentially with depth.
func AllShortestPaths(g *graphmodel.Graph, dist Distances, source, sink int) ([][]int, error) {
	if err := checkEndpoints("AllShortestPaths", g, dist, source, sink); err != nil {
		return nil, err
	}

	partial := [][]int{{sink}}
	var step []int
	for level := dist[sink] - 1; level >= 0; level-- {
		var next [][]int
		for _, p := range partial {
			step = closer(g, dist, p[len(p)-1], step[:0])
			for _, pred := range step {
				ext := make([]int, len(p), len(p)+1)
				copy(ext, p)
				next = append(next, append(ext, pred))
			}
		}
		partial = next
	}
	for _, p := range partial {
		slices.Reverse(p)
	}
	return partial, nil
}

// closer appends to buf the predecessors of id labelled one less than id.
func closer(g *graphmodel.Graph, dist Distances, id int, buf []int) []int {
	want := dist[id] - 1
	for _, p := range g.Predecessors(id) {
		if dist[p] == want {
			buf = append(buf, p)
		}
	}
	return buf
}
