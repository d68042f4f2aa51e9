package tui

import (
	"image"

	"github.com/wesen/graphwalk/internal/game"
	"github.com/wesen/graphwalk/pkg/graphmodel"
)

// Surface receives the game's renderer callbacks. The model reads the
// graph directly when drawing, so the surface only keeps what the graph
// does not: spawn counts for the panel and the pending camera focus.
// Bubble Tea copies the model on every update; share the surface by
// pointer.
type Surface struct {
	nodes, edges int
	focus        int
	focused      bool
}

var _ game.Surface = (*Surface)(nil)

// NewSurface returns an empty surface.
func NewSurface() *Surface { return &Surface{focus: graphmodel.None} }

func (s *Surface) NodeSpawned(int, image.Point)              { s.nodes++ }
func (s *Surface) EdgeSpawned(int, image.Point, image.Point) { s.edges++ }
func (s *Surface) NodeState(int, graphmodel.State)           {}
func (s *Surface) EdgeState(int, graphmodel.State)           {}

// FocusOn asks the camera to bring node id into view on the next update.
func (s *Surface) FocusOn(id int) {
	s.focus = id
	s.focused = true
}

// takeFocus returns and clears the pending focus request.
func (s *Surface) takeFocus() (int, bool) {
	id, ok := s.focus, s.focused
	s.focused = false
	return id, ok
}

// reset forgets the previous graph before a rebuild.
func (s *Surface) reset() {
	*s = Surface{focus: graphmodel.None}
}
