// Package game coordinates one round of graphwalk: it generates the graph,
// labels distances, owns the player's walk and routes clicks to it.
//
// Everything runs on the caller's goroutine. Generation requested from the
// UI is queued with Request and executed by Drain on the host loop's next
// tick.
package game

import (
	"image"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/wesen/graphwalk/pkg/generator"
	"github.com/wesen/graphwalk/pkg/graphmodel"
	"github.com/wesen/graphwalk/pkg/paths"
	"github.com/wesen/graphwalk/pkg/session"
	"go.uber.org/zap"
)

// Surface is the renderer side of the game: it learns about spawned
// elements, display state changes and where to focus.
type Surface interface {
	generator.Spawner
	session.Notifier
}

// NopSurface ignores every call.
type NopSurface struct{}

func (NopSurface) NodeSpawned(int, image.Point)              {}
func (NopSurface) EdgeSpawned(int, image.Point, image.Point) {}
func (NopSurface) NodeState(int, graphmodel.State)           {}
func (NopSurface) EdgeState(int, graphmodel.State)           {}
func (NopSurface) FocusOn(int)                               {}

// Recorder observes generation and finished walks.
type Recorder interface {
	generator.Recorder
	WalkCompleted(steps, shortest int)
}

// Game is the coordinator. The zero value is not usable; call New.
type Game struct {
	log     *zap.Logger
	rng     *rand.Rand
	surface Surface
	rec     Recorder
	gen     *generator.Generator

	graph    *graphmodel.Graph
	dist     paths.Distances
	sess     *session.Session
	round    uuid.UUID
	started  time.Time
	finished bool

	pending []generator.Params
}

// Option configures a Game.
type Option func(*Game)

func WithLogger(l *zap.Logger) Option { return func(g *Game) { g.log = l } }
func WithSurface(s Surface) Option    { return func(g *Game) { g.surface = s } }
func WithRecorder(r Recorder) Option  { return func(g *Game) { g.rec = r } }

// WithSeed fixes the random source shared by generation and path tie-breaks.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

// New creates a Game with no graph.
func New(opts ...Option) *Game {
	g := &Game{log: zap.NewNop(), surface: NopSurface{}}
	for _, o := range opts {
		o(g)
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.surface == nil {
		g.surface = NopSurface{}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	genOpts := []generator.Option{
		generator.WithRand(g.rng),
		generator.WithLogger(g.log.Named("generator")),
		generator.WithSurface(g.surface),
	}
	if g.rec != nil {
		genOpts = append(genOpts, generator.WithRecorder(g.rec))
	}
	g.gen = generator.New(genOpts...)
	return g
}

// Generate builds a graph from p and enters path mode. While a graph
// exists it returns that graph unchanged; call Reset first to rebuild.
func (g *Game) Generate(p generator.Params) (*graphmodel.Graph, error) {
	if g.graph != nil {
		return g.graph, nil
	}
	p = p.Normalize()
	graph, err := g.gen.Generate(p)
	if err != nil {
		g.log.Error("generation failed", zap.Error(err), zap.Int("nodes", p.NodeCount))
		return nil, err
	}
	dist, err := paths.ComputeDistances(graph, graph.Source())
	if err != nil {
		return nil, err
	}

	g.graph = graph
	g.dist = dist
	g.round = uuid.New()
	g.started = time.Now()
	g.finished = false
	g.sess = session.New(graph, graph.Source(), graph.Sink(), g.surface)

	g.log.Info("round started",
		zap.String("round", g.round.String()),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
		zap.Bool("directed", graph.Directed()),
		zap.Int("shortest", g.ShortestDistance()))
	return graph, nil
}

// Request queues a rebuild with p for the next Drain.
func (g *Game) Request(p generator.Params) {
	g.pending = append(g.pending, p)
}

// Pending reports how many rebuilds are queued.
func (g *Game) Pending() int { return len(g.pending) }

// Drain runs every queued rebuild in order, each exactly once, and returns
// the last resulting graph. With nothing queued it returns the current
// graph.
func (g *Game) Drain() (*graphmodel.Graph, error) {
	queue := g.pending
	g.pending = nil
	for _, p := range queue {
		g.Reset()
		if _, err := g.Generate(p); err != nil {
			return nil, err
		}
	}
	return g.graph, nil
}

// Reset tears down the graph and the walk.
func (g *Game) Reset() {
	if g.graph != nil {
		g.graph.Clear()
	}
	g.graph = nil
	g.dist = nil
	g.sess = nil
	g.finished = false
}

// Click routes a primary click to Extend and a secondary click to
// Backtrack. It reports whether the walk changed.
func (g *Game) Click(t session.Target, primary bool) bool {
	if g.sess == nil {
		return false
	}
	var changed bool
	if primary {
		changed = g.sess.Extend(t)
	} else {
		changed = g.sess.Backtrack()
	}
	if changed && g.sess.IsComplete() && !g.finished {
		g.finished = true
		if g.rec != nil {
			g.rec.WalkCompleted(g.sess.Len(), g.ShortestDistance())
		}
		g.log.Info("sink reached",
			zap.String("round", g.round.String()),
			zap.Int("steps", g.sess.Len()),
			zap.Int("shortest", g.ShortestDistance()),
			zap.Duration("elapsed", time.Since(g.started)))
	}
	return changed
}

// PathLength is the number of edges walked, or -1 without a session.
func (g *Game) PathLength() int {
	if g.sess == nil {
		return -1
	}
	return g.sess.Len()
}

// ShortestDistance is the BFS distance from source to sink, or -1 when
// there is no graph or the sink is unreachable.
func (g *Game) ShortestDistance() int {
	if g.graph == nil {
		return -1
	}
	return g.dist.Of(g.graph.Sink())
}

// FastestPath returns one shortest path, picked at random among ties.
func (g *Game) FastestPath() ([]int, error) {
	if g.graph == nil {
		return nil, paths.ErrGraphNil
	}
	return paths.ShortestPath(g.graph, g.dist, g.graph.Source(), g.graph.Sink(), g.rng)
}

// AllShortestPaths enumerates every shortest source to sink path.
func (g *Game) AllShortestPaths() ([][]int, error) {
	if g.graph == nil {
		return nil, paths.ErrGraphNil
	}
	return paths.AllShortestPaths(g.graph, g.dist, g.graph.Source(), g.graph.Sink())
}

// Complete reports whether the walk currently ends at the sink.
func (g *Game) Complete() bool {
	return g.sess != nil && g.sess.IsComplete()
}

// Round identifies the current graph. It is the zero UUID before the first
// generation.
func (g *Game) Round() uuid.UUID { return g.round }

// Graph returns the current graph, or nil.
func (g *Game) Graph() *graphmodel.Graph { return g.graph }

// Session returns the current walk, or nil.
func (g *Game) Session() *session.Session { return g.sess }

// Distances returns the BFS labels of the current graph.
func (g *Game) Distances() paths.Distances { return g.dist }
