package paths

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesen/graphwalk/pkg/generator"
	"github.com/wesen/graphwalk/pkg/graphmodel"
)

// build creates a graph with one node per point and the given edges.
func build(t *testing.T, directed bool, pts []image.Point, edges [][2]int) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.New(directed)
	for _, p := range pts {
		_, err := g.AddNode(p)
		require.NoError(t, err)
	}
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	return g
}

func line(t *testing.T) *graphmodel.Graph {
	return build(t, false,
		[]image.Point{{0, 0}, {2, 0}, {4, 0}, {6, 0}, {8, 0}},
		[][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
}

func diamond(t *testing.T) *graphmodel.Graph {
	return build(t, false,
		[]image.Point{{0, 0}, {2, -2}, {2, 2}, {4, 0}},
		[][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
}

func assertValidPath(t *testing.T, g *graphmodel.Graph, p []int, source, sink, length int) {
	t.Helper()
	require.Len(t, p, length+1)
	assert.Equal(t, source, p[0])
	assert.Equal(t, sink, p[len(p)-1])
	for i := 1; i < len(p); i++ {
		assert.True(t, g.Adjacent(p[i-1], p[i]), "%d-%d not adjacent", p[i-1], p[i])
	}
}

// ── ComputeDistances ──

func TestDistancesOnLine(t *testing.T) {
	g := line(t)
	dist, err := ComputeDistances(g, 0)
	require.NoError(t, err)
	assert.Equal(t, Distances{0, 1, 2, 3, 4}, dist)
	assert.Equal(t, 3, g.Node(3).Distance, "labels are stamped on nodes")
}

func TestDistancesUnreachable(t *testing.T) {
	g := build(t, false,
		[]image.Point{{0, 0}, {2, 0}, {9, 9}},
		[][2]int{{0, 1}})
	dist, err := ComputeDistances(g, 0)
	require.NoError(t, err)
	assert.Equal(t, Unset, dist[2])
	assert.False(t, dist.Reachable(2))
	assert.Equal(t, Unset, g.Node(2).Distance)
	assert.Equal(t, Unset, dist.Of(99))
}

func TestDistancesDirected(t *testing.T) {
	g := build(t, true,
		[]image.Point{{0, 0}, {2, 0}, {4, 0}},
		[][2]int{{0, 1}, {2, 1}})
	dist, err := ComputeDistances(g, 0)
	require.NoError(t, err)
	assert.Equal(t, Distances{0, 1, Unset}, dist, "edges are only followed tail to head")
}

func TestDistancesErrors(t *testing.T) {
	_, err := ComputeDistances(nil, 0)
	require.ErrorIs(t, err, ErrGraphNil)
	_, err = ComputeDistances(line(t), 17)
	require.ErrorIs(t, err, ErrNodeNotFound)
}

func TestDistancesOnGeneratedGraphs(t *testing.T) {
	p := generator.Params{NodeCount: 40, MinDegree: 1, MaxDegree: 4, Moat: 1, MaxCrossings: 1}
	for seed := int64(1); seed <= 4; seed++ {
		g, err := generator.New(generator.WithSeed(seed)).Generate(p)
		require.NoError(t, err)
		dist, err := ComputeDistances(g, g.Source())
		require.NoError(t, err)

		assert.Equal(t, 0, dist[g.Source()])
		for _, e := range g.Edges() {
			du, dv := dist[e.Tail], dist[e.Head]
			if du >= 0 && dv >= 0 {
				assert.LessOrEqual(t, abs(du-dv), 1, "edge %d spans %d levels", e.ID, abs(du-dv))
			} else {
				assert.Equal(t, du, dv, "an edge cannot join reachable and unreachable nodes")
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ── ShortestPath ──

func TestShortestPathLine(t *testing.T) {
	g := line(t)
	dist, _ := ComputeDistances(g, 0)
	p, err := ShortestPath(g, dist, 0, 4, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p)
}

func TestShortestPathDiamondVisitsBothBranches(t *testing.T) {
	g := diamond(t)
	dist, _ := ComputeDistances(g, 0)
	rng := rand.New(rand.NewSource(7))

	seen := map[int]bool{}
	for i := 0; i < 64; i++ {
		p, err := ShortestPath(g, dist, 0, 3, rng)
		require.NoError(t, err)
		assertValidPath(t, g, p, 0, 3, 2)
		seen[p[1]] = true
	}
	assert.True(t, seen[1] && seen[2], "random tie-break should use both middles, got %v", seen)
}

func TestShortestPathSourceIsSink(t *testing.T) {
	g := line(t)
	dist, _ := ComputeDistances(g, 2)
	p, err := ShortestPath(g, dist, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, p)
}

func TestShortestPathErrors(t *testing.T) {
	g := build(t, false, []image.Point{{0, 0}, {2, 0}, {9, 9}}, [][2]int{{0, 1}})
	dist, _ := ComputeDistances(g, 0)

	_, err := ShortestPath(g, dist, 0, 2, nil)
	require.ErrorIs(t, err, ErrUnreachable)

	_, err = ShortestPath(g, dist, 1, 0, nil)
	require.ErrorIs(t, err, ErrStaleDistances)

	_, err = ShortestPath(g, dist, 0, 5, nil)
	require.ErrorIs(t, err, ErrNodeNotFound)

	_, err = ShortestPath(nil, dist, 0, 1, nil)
	require.ErrorIs(t, err, ErrGraphNil)
}

// ── AllShortestPaths ──

func TestAllShortestPathsLine(t *testing.T) {
	g := line(t)
	dist, _ := ComputeDistances(g, 0)
	all, err := AllShortestPaths(g, dist, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3, 4}}, all)
}

func TestAllShortestPathsDiamond(t *testing.T) {
	g := diamond(t)
	dist, _ := ComputeDistances(g, 0)
	assert.Equal(t, 2, dist[3])

	all, err := AllShortestPaths(g, dist, 0, 3)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assertValidPath(t, g, p, 0, 3, 2)
	}
	assert.ElementsMatch(t, [][]int{{0, 1, 3}, {0, 2, 3}}, all)
}

func TestAllShortestPathsGrid(t *testing.T) {
	// 3x3 lattice: C(4,2) = 6 monotone paths corner to corner.
	var pts []image.Point
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			pts = append(pts, image.Pt(2*x, 2*y))
		}
	}
	var edges [][2]int
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			id := y*3 + x
			if x < 2 {
				edges = append(edges, [2]int{id, id + 1})
			}
			if y < 2 {
				edges = append(edges, [2]int{id, id + 3})
			}
		}
	}
	g := build(t, false, pts, edges)
	dist, _ := ComputeDistances(g, 0)
	all, err := AllShortestPaths(g, dist, 0, 8)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for _, p := range all {
		assertValidPath(t, g, p, 0, 8, 4)
	}
}

func TestAllShortestPathsDirected(t *testing.T) {
	// 1→2 joins the two middles and must not produce a path.
	g := build(t, true,
		[]image.Point{{0, 0}, {2, -2}, {2, 2}, {4, 0}},
		[][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {1, 2}})
	dist, _ := ComputeDistances(g, 0)
	all, err := AllShortestPaths(g, dist, 0, 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]int{{0, 1, 3}, {0, 2, 3}}, all)
}

func TestAllShortestPathsUnreachable(t *testing.T) {
	g := build(t, false, []image.Point{{0, 0}, {2, 0}}, nil)
	dist, _ := ComputeDistances(g, 0)
	_, err := AllShortestPaths(g, dist, 0, 1)
	require.ErrorIs(t, err, ErrUnreachable)
}
