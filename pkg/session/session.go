// Package session holds the player's walk from source toward sink.
//
// A walk starts at the source and grows one adjacent node at a time. It
// never repeats a node. Invalid moves are ignored and reported with false.
package session

import (
	"github.com/wesen/graphwalk/pkg/graphmodel"
)

// TargetKind says what a click landed on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetNode
	TargetEdge
)

// Target is a clicked node, a clicked edge or nothing.
type Target struct {
	Kind TargetKind
	ID   int
}

// NoTarget is a click on empty space.
var NoTarget = Target{Kind: TargetNone, ID: graphmodel.None}

func NodeTarget(id int) Target { return Target{Kind: TargetNode, ID: id} }
func EdgeTarget(id int) Target { return Target{Kind: TargetEdge, ID: id} }

// Notifier receives display updates. Every method is informational.
type Notifier interface {
	NodeState(id int, s graphmodel.State)
	EdgeState(id int, s graphmodel.State)
	FocusOn(id int)
}

type nopNotifier struct{}

func (nopNotifier) NodeState(int, graphmodel.State) {}
func (nopNotifier) EdgeState(int, graphmodel.State) {}
func (nopNotifier) FocusOn(int)                     {}

// Session is the walk being edited.
type Session struct {
	g      *graphmodel.Graph
	sink   int
	walk   []int
	onWalk map[int]bool
	notify Notifier
}

// New starts a walk at source. A nil notifier discards updates.
func New(g *graphmodel.Graph, source, sink int, notifier Notifier) *Session {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	s := &Session{
		g:      g,
		sink:   sink,
		walk:   []int{source},
		onWalk: map[int]bool{source: true},
		notify: notifier,
	}
	notifier.FocusOn(source)
	return s
}

// Walk returns a copy of the walk, source first.
func (s *Session) Walk() []int {
	return append([]int(nil), s.walk...)
}

// End is the node the walk currently ends at.
func (s *Session) End() int { return s.walk[len(s.walk)-1] }

// Len is the number of edges walked.
func (s *Session) Len() int { return len(s.walk) - 1 }

// IsComplete reports whether the walk has reached the sink.
func (s *Session) IsComplete() bool { return s.End() == s.sink }

// Contains reports whether id is on the walk.
func (s *Session) Contains(id int) bool { return s.onWalk[id] }

// resolve maps a target to the node it asks the walk to step to.
func (s *Session) resolve(t Target) (int, bool) {
	switch t.Kind {
	case TargetNode:
		return t.ID, s.g.HasNode(t.ID)
	case TargetEdge:
		e := s.g.Edge(t.ID)
		if e == nil {
			return graphmodel.None, false
		}
		next := e.Other(s.End())
		return next, next != graphmodel.None
	}
	return graphmodel.None, false
}

// Extend steps the walk to the target. It reports false, leaving the walk
// untouched, when the target does not resolve, is not adjacent to the end
// of the walk, or is already on it.
func (s *Session) Extend(t Target) bool {
	next, ok := s.resolve(t)
	if !ok || s.onWalk[next] || !s.g.Adjacent(s.End(), next) {
		return false
	}
	e := s.g.EdgeBetween(s.End(), next)

	s.walk = append(s.walk, next)
	s.onWalk[next] = true

	s.g.SetEdgeState(e.ID, graphmodel.StateOnPath)
	s.notify.EdgeState(e.ID, graphmodel.StateOnPath)
	if next != s.sink {
		s.g.SetNodeState(next, graphmodel.StateOnPath)
		s.notify.NodeState(next, graphmodel.StateOnPath)
	}
	s.notify.FocusOn(next)
	return true
}

// Backtrack removes the last step. It reports false when the walk is back
// at the source.
func (s *Session) Backtrack() bool {
	if len(s.walk) == 1 {
		return false
	}
	last := s.End()
	s.walk = s.walk[:len(s.walk)-1]
	delete(s.onWalk, last)

	if last != s.sink {
		s.g.SetNodeState(last, graphmodel.StateDefault)
		s.notify.NodeState(last, graphmodel.StateDefault)
	}
	if e := s.g.EdgeBetween(s.End(), last); e != nil {
		s.g.SetEdgeState(e.ID, graphmodel.StateDefault)
		s.notify.EdgeState(e.ID, graphmodel.StateDefault)
	}
	s.notify.FocusOn(s.End())
	return true
}

// Reset backtracks to the source.
func (s *Session) Reset() {
	for s.Backtrack() {
	}
}
