package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/wesen/graphwalk/pkg/cellbuf"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// CRT green palette.
var (
	colorBG      = c("#080e0b")
	colorPanelBG = c("#1a2a20")
	colorBar     = c("#0a1510")

	colorText   = c("#00d4a0")
	colorBright = c("#00ffc8")
	colorDim    = c("#336655")
	colorAmber  = c("#ffcc00")
	colorWarn   = c("#ff6655")
)

// Raster style keys for the canvas buffer.
const (
	styleBG cellbuf.StyleKey = iota
	styleLattice
	styleEdge
	styleEdgeFastest
	styleEdgePath
	styleNode
	styleNodePath
	styleNodeEndpoint
	styleNodeEnd
)

var canvasStyles = map[cellbuf.StyleKey]lipgloss.Style{
	styleBG:           lipgloss.NewStyle().Background(colorBG),
	styleLattice:      lipgloss.NewStyle().Foreground(c("#0e2e20")).Background(colorBG),
	styleEdge:         lipgloss.NewStyle().Foreground(c("#1a6a4a")).Background(colorBG),
	styleEdgeFastest:  lipgloss.NewStyle().Foreground(c("#00ccee")).Background(colorBG),
	styleEdgePath:     lipgloss.NewStyle().Foreground(colorAmber).Background(colorBG).Bold(true),
	styleNode:         lipgloss.NewStyle().Foreground(colorText).Background(colorBG),
	styleNodePath:     lipgloss.NewStyle().Foreground(colorAmber).Background(colorBG).Bold(true),
	styleNodeEndpoint: lipgloss.NewStyle().Foreground(c("#44ff88")).Background(colorBG).Bold(true),
	styleNodeEnd:      lipgloss.NewStyle().Foreground(c("#ffee66")).Background(c("#12120a")).Bold(true),
}

var (
	barStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(colorBright).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(colorText)

	panelStyle      = lipgloss.NewStyle().Background(colorPanelBG)
	panelTitleStyle = panelStyle.Foreground(colorBright).Bold(true)
	panelTextStyle  = panelStyle.Foreground(colorText)
	panelDimStyle   = panelStyle.Foreground(colorDim)
	panelKeyStyle   = panelStyle.Foreground(c("#ddaa44"))
	panelSepStyle   = lipgloss.NewStyle().Foreground(c("#1a4a3a")).Background(colorPanelBG)

	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorText).
			Background(colorBar).
			Padding(1, 2)
	formTitleStyle = lipgloss.NewStyle().Foreground(colorBright).Background(colorBar).Bold(true)
	formLabelStyle = lipgloss.NewStyle().Foreground(c("#ddaa44")).Background(colorBar)
	formHintStyle  = lipgloss.NewStyle().Foreground(colorDim).Background(colorBar).Italic(true)
	formErrStyle   = lipgloss.NewStyle().Foreground(colorWarn).Background(colorBar)
)
