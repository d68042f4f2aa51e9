// Package tui is the terminal front end: a Bubble Tea model that draws the
// graph on a pannable, zoomable canvas and turns clicks into walk steps.
package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/wesen/graphwalk/internal/config"
	"github.com/wesen/graphwalk/internal/game"
	"github.com/wesen/graphwalk/pkg/generator"
	"go.uber.org/zap"
)

// zoomLevels are the rows per grid unit the +/- keys step through.
var zoomLevels = []float64{0.25, 0.5, 1, 2, 3}

const defaultZoom = 2

// Model is the application state.
type Model struct {
	Width, Height  int
	MouseX, MouseY int
	CamX, CamY     float64

	game    *game.Game
	surface *Surface
	log     *zap.Logger
	params  generator.Params

	zoom      int
	cellWidth int

	showFastest  bool
	fastest      map[int]bool
	fastestRound uuid.UUID

	form   paramForm
	status string
}

// New wires a model to g. The surface must be the one g was built with.
func New(g *game.Game, s *Surface, p generator.Params, ui config.UIConfig, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		game:        g,
		surface:     s,
		log:         log,
		params:      p,
		zoom:        defaultZoom,
		cellWidth:   max(ui.CellWidth, 1),
		showFastest: ui.ShowFastest,
	}
}

// drainMsg tells the model to run queued generation.
type drainMsg struct{}

func drainCmd() tea.Msg { return drainMsg{} }

// Init queues the first graph unless one already exists.
func (m Model) Init() tea.Cmd {
	if m.game.Graph() != nil {
		return nil
	}
	m.game.Request(m.params)
	return drainCmd
}
