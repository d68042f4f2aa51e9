package generator

import (
	"fmt"
	"image"
	"time"

	"github.com/wesen/graphwalk/pkg/graphmodel"
	"github.com/wesen/graphwalk/pkg/spatial"
	"go.uber.org/zap"
)

// Generator builds graphs from Params. It is not safe for concurrent use;
// it shares its random source with whoever supplied it.
type Generator struct {
	cfg config
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	return &Generator{cfg: newConfig(opts...)}
}

// limits are the resolved per-round bounds.
type limits struct {
	maxDeg    int // Unlimited or a count
	minDeg    int
	radius    float64
	crossings int // Unlimited or a count
}

// Generate validates p and builds a fresh graph from it.
func (gen *Generator) Generate(p Params) (*graphmodel.Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := graphmodel.New(p.Directed)
	if err := gen.Build(g, p); err != nil {
		return nil, err
	}
	return g, nil
}

// Build populates an empty graph. On error g is left cleared.
func (gen *Generator) Build(g *graphmodel.Graph, p Params) error {
	start := time.Now()
	lim := limits{
		maxDeg:    p.MaxDegree.Resolve(p.NodeCount),
		minDeg:    p.MinDegree.Resolve(p.NodeCount),
		radius:    p.Radius(),
		crossings: p.MaxCrossings,
	}
	if lim.crossings < 0 {
		lim.crossings = Unlimited
	}

	if err := gen.place(g, p); err != nil {
		g.Clear()
		return err
	}
	gen.connect(g, lim)

	source, sink := chooseEndpoints(g)
	if err := g.SetEndpoints(source, sink); err != nil {
		g.Clear()
		return fmt.Errorf("Build: %w", err)
	}

	elapsed := time.Since(start)
	gen.cfg.rec.Generated(g.NodeCount(), g.EdgeCount(), elapsed)
	gen.cfg.log.Debug("graph generated",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("source", source),
		zap.Int("sink", sink),
		zap.Duration("elapsed", elapsed))
	return nil
}

// ── Phase 1: placement ──

func (gen *Generator) place(g *graphmodel.Graph, p Params) error {
	rng := gen.cfg.rng
	b := p.InitialBound()
	for i := 0; i < p.NodeCount; i++ {
		attempts, growths := 0, 0
		for {
			pos := image.Pt(rng.Intn(2*b+1)-b, rng.Intn(2*b+1)-b)
			gen.cfg.rec.PlacementAttempt()
			if !g.Index().HasNeighborWithin(pos, p.Moat) {
				// A taken centre cell only happens with a zero moat; resample.
				if id, err := g.AddNode(pos); err == nil {
					gen.cfg.spawn.NodeSpawned(id, pos)
					break
				}
			}
			attempts++
			if attempts < placementRetries {
				continue
			}
			if growths >= gen.cfg.maxGrowths {
				return fmt.Errorf("place: node %d after %d growths (bound %d): %w",
					i, growths, b, ErrPlacementExhausted)
			}
			b = grow(b)
			growths++
			attempts = 0
			gen.cfg.rec.BoundGrown()
			gen.cfg.log.Debug("placement bound grown",
				zap.Int("node", i), zap.Int("bound", b), zap.Int("growths", growths))
		}
	}
	return nil
}

// grow enlarges a bound by 20%, rounded up, by at least one cell.
func grow(b int) int {
	return max(b+1, (6*b+4)/5)
}

// ── Phase 2: edges ──

func (gen *Generator) connect(g *graphmodel.Graph, lim limits) {
	rng := gen.cfg.rng
	for _, n := range g.Nodes() {
		cand := gen.candidates(g, n.ID, lim)
		hi := len(cand)
		if lim.maxDeg != Unlimited {
			hi = min(hi, lim.maxDeg)
		}
		lo := min(lim.minDeg, hi)
		want := lo + rng.Intn(hi-lo+1)

		for added := 0; added < want && len(cand) > 0; {
			i := rng.Intn(len(cand))
			head := cand[i]
			cand[i] = cand[len(cand)-1]
			cand = cand[:len(cand)-1]

			// Earlier additions may have invalidated this candidate.
			crossed, reason := check(g, n.ID, head, lim)
			if reason != "" {
				gen.cfg.rec.CandidateRejected(reason)
				continue
			}
			gen.addEdge(g, n.ID, head, crossed)
			added++
		}
	}
}

func (gen *Generator) candidates(g *graphmodel.Graph, tail int, lim limits) []int {
	var cand []int
	for _, other := range g.Nodes() {
		if _, reason := check(g, tail, other.ID, lim); reason == "" {
			cand = append(cand, other.ID)
		}
	}
	return cand
}

func (gen *Generator) addEdge(g *graphmodel.Graph, tail, head int, crossed []int) {
	id, err := g.AddEdge(tail, head)
	if err != nil {
		// check already ruled these out
		gen.cfg.log.Warn("edge rejected by store", zap.Error(err))
		return
	}
	g.Edge(id).Crossings = len(crossed)
	for _, c := range crossed {
		g.Edge(c).Crossings++
	}
	gen.cfg.rec.EdgeAdded(len(crossed))
	gen.cfg.spawn.EdgeSpawned(id, g.Node(tail).Pos, g.Node(head).Pos)
}

// check applies the validity rule to the edge tail→head. It returns the
// edges the new edge would cross, or the reason it must be skipped.
func check(g *graphmodel.Graph, tail, head int, lim limits) ([]int, RejectReason) {
	if tail == head {
		return nil, RejectSelf
	}
	if lim.maxDeg != Unlimited && (g.Degree(tail) >= lim.maxDeg || g.Degree(head) >= lim.maxDeg) {
		return nil, RejectDegree
	}
	tp, hp := g.Node(tail).Pos, g.Node(head).Pos
	length := spatial.Distance(tp, hp)
	if length > lim.radius {
		return nil, RejectDistance
	}
	if g.EdgeBetween(tail, head) != nil {
		return nil, RejectDuplicate
	}

	var crossed []int
	for _, hit := range g.Index().SegmentHits(tp, hp) {
		switch hit.Kind {
		case spatial.HitNode:
			if hit.ID == tail || hit.ID == head {
				continue
			}
			if spatial.Distance(tp, g.Node(hit.ID).Pos) < length {
				return nil, RejectNode
			}
		case spatial.HitEdge:
			e := g.Edge(hit.ID)
			if e.Other(tail) != graphmodel.None || e.Other(head) != graphmodel.None {
				continue
			}
			crossed = append(crossed, e.ID)
			if lim.crossings == Unlimited {
				continue
			}
			if len(crossed) > lim.crossings || e.Crossings >= lim.crossings {
				return nil, RejectCrossings
			}
		}
	}
	return crossed, ""
}

// chooseEndpoints picks the node with the smallest x+y as source and the
// largest as sink. Comparisons are strict, so the first extremum in
// insertion order wins on ties.
func chooseEndpoints(g *graphmodel.Graph) (source, sink int) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return graphmodel.None, graphmodel.None
	}
	sum := func(p image.Point) int { return p.X + p.Y }
	source, sink = 0, 0
	for _, n := range nodes {
		if sum(n.Pos) < sum(nodes[source].Pos) {
			source = n.ID
		}
		if sum(n.Pos) > sum(nodes[sink].Pos) {
			sink = n.ID
		}
	}
	return source, sink
}
