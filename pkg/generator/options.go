package generator

import (
	"image"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxGrowths caps bound growth for a single node before placement
// gives up.
const DefaultMaxGrowths = 64

// placementRetries is the number of rejected samples for one node that
// triggers a bound growth.
const placementRetries = 20

// RejectReason classifies why a candidate edge was skipped.
type RejectReason string

const (
	RejectSelf      RejectReason = "self"
	RejectDegree    RejectReason = "degree"
	RejectDistance  RejectReason = "distance"
	RejectDuplicate RejectReason = "duplicate"
	RejectNode      RejectReason = "node"
	RejectCrossings RejectReason = "crossings"
)

// Recorder observes generation. Implementations must be cheap; the
// generator calls them from its inner loops.
type Recorder interface {
	PlacementAttempt()
	BoundGrown()
	CandidateRejected(reason RejectReason)
	EdgeAdded(crossings int)
	Generated(nodes, edges int, elapsed time.Duration)
}

// Spawner is told about each element as it is created, so a renderer can
// build its visuals alongside the store.
type Spawner interface {
	NodeSpawned(id int, pos image.Point)
	EdgeSpawned(id int, tail, head image.Point)
}

type nopRecorder struct{}

func (nopRecorder) PlacementAttempt()                 {}
func (nopRecorder) BoundGrown()                       {}
func (nopRecorder) CandidateRejected(RejectReason)    {}
func (nopRecorder) EdgeAdded(int)                     {}
func (nopRecorder) Generated(int, int, time.Duration) {}

type nopSpawner struct{}

func (nopSpawner) NodeSpawned(int, image.Point)              {}
func (nopSpawner) EdgeSpawned(int, image.Point, image.Point) {}

type config struct {
	rng        *rand.Rand
	log        *zap.Logger
	rec        Recorder
	spawn      Spawner
	maxGrowths int
}

// Option customizes a Generator.
type Option func(*config)

// WithRand shares an existing random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generator: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRecorder attaches a generation observer.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.rec = r
		}
	}
}

// WithSurface attaches a spawn observer.
func WithSurface(s Spawner) Option {
	return func(c *config) {
		if s != nil {
			c.spawn = s
		}
	}
}

// WithMaxGrowths caps bound growth per node. Panics on negative values.
func WithMaxGrowths(n int) Option {
	if n < 0 {
		panic("generator: WithMaxGrowths(n<0)")
	}
	return func(c *config) { c.maxGrowths = n }
}

func newConfig(opts ...Option) config {
	c := config{
		log:        zap.NewNop(),
		rec:        nopRecorder{},
		spawn:      nopSpawner{},
		maxGrowths: DefaultMaxGrowths,
	}
	for _, o := range opts {
		o(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}
