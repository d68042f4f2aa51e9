// Package metrics exposes generation and play statistics as Prometheus
// collectors.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"github.com/wesen/graphwalk/pkg/generator"
)

// Metrics implements generator.Recorder and counts finished walks.
type Metrics struct {
	gatherer prometheus.Gatherer

	placementAttempts prometheus.Counter
	boundGrowths      prometheus.Counter
	rejected          *prometheus.CounterVec
	edges             prometheus.Counter
	crossings         prometheus.Counter
	graphNodes        prometheus.Histogram
	graphEdges        prometheus.Histogram
	generateDuration  prometheus.Histogram
	walks             *prometheus.CounterVec
	walkExcess        prometheus.Histogram
}

var _ generator.Recorder = (*Metrics)(nil)

// New registers the collectors with reg. A nil reg gets a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		placementAttempts: f.NewCounter(prometheus.CounterOpts{
			Name: "graphwalk_placement_attempts_total",
			Help: "Node positions sampled during placement",
		}),
		boundGrowths: f.NewCounter(prometheus.CounterOpts{
			Name: "graphwalk_placement_bound_growths_total",
			Help: "Times the placement bound grew because a node could not be placed",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphwalk_edge_candidates_rejected_total",
			Help: "Edge candidates skipped on re-validation, by reason",
		}, []string{"reason"}),
		edges: f.NewCounter(prometheus.CounterOpts{
			Name: "graphwalk_edges_added_total",
			Help: "Edges added across all generated graphs",
		}),
		crossings: f.NewCounter(prometheus.CounterOpts{
			Name: "graphwalk_edge_crossings_total",
			Help: "Edge crossings recorded when edges were added",
		}),
		graphNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphwalk_graph_nodes",
			Help:    "Nodes per generated graph",
			Buckets: []float64{10, 25, 50, 100, 200, 500},
		}),
		graphEdges: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphwalk_graph_edges",
			Help:    "Edges per generated graph",
			Buckets: []float64{10, 25, 50, 100, 200, 500, 1000},
		}),
		generateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphwalk_generate_duration_seconds",
			Help:    "Graph generation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}),
		walks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "graphwalk_walks_completed_total",
			Help: "Walks that reached the sink, by whether they were shortest",
		}, []string{"result"}),
		walkExcess: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphwalk_walk_excess_steps",
			Help:    "Steps taken beyond the shortest distance on completed walks",
			Buckets: []float64{0, 1, 2, 4, 8, 16},
		}),
	}
}

func (m *Metrics) PlacementAttempt() { m.placementAttempts.Inc() }

func (m *Metrics) BoundGrown() { m.boundGrowths.Inc() }

func (m *Metrics) CandidateRejected(reason generator.RejectReason) {
	m.rejected.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) EdgeAdded(crossings int) {
	m.edges.Inc()
	// Each crossing touches two edges; count it once.
	m.crossings.Add(float64(crossings))
}

func (m *Metrics) Generated(nodes, edges int, elapsed time.Duration) {
	m.graphNodes.Observe(float64(nodes))
	m.graphEdges.Observe(float64(edges))
	m.generateDuration.Observe(elapsed.Seconds())
}

// WalkCompleted records a walk that reached the sink in steps edges when
// shortest was possible.
func (m *Metrics) WalkCompleted(steps, shortest int) {
	excess := steps - shortest
	result := "longer"
	if excess <= 0 {
		result = "shortest"
		excess = 0
	}
	m.walks.WithLabelValues(result).Inc()
	m.walkExcess.Observe(float64(excess))
}

// WriteText writes every registered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
