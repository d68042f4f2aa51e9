package drawutil

import (
	"image"
	"math"

	"github.com/wesen/graphwalk/pkg/cellbuf"
)

// Projection maps grid coordinates onto a W x H buffer. The camera point
// sits at the buffer centre; one grid unit spans Scale rows and
// Scale*CellWidth columns.
type Projection struct {
	CamX, CamY float64
	W, H       int
	Scale      float64
	CellWidth  int
}

func (p Projection) sx() float64 { return p.Scale * float64(max(p.CellWidth, 1)) }

// ToScreen returns the buffer cell of grid point g.
func (p Projection) ToScreen(g image.Point) image.Point {
	return image.Pt(
		p.W/2+int(math.Round((float64(g.X)-p.CamX)*p.sx())),
		p.H/2+int(math.Round((float64(g.Y)-p.CamY)*p.Scale)),
	)
}

// ToWorld inverts ToScreen for buffer cell s.
func (p Projection) ToWorld(s image.Point) (x, y float64) {
	return p.CamX + float64(s.X-p.W/2)/p.sx(),
		p.CamY + float64(s.Y-p.H/2)/p.Scale
}

// CellSize is the extent of one buffer cell in grid units, the larger of
// the two axes.
func (p Projection) CellSize() float64 {
	return 1 / math.Min(p.Scale, p.sx())
}

// DrawLattice dots grid points at depth 0, thinning them so neighbouring
// dots stay at least two rows apart.
func DrawLattice(buf *cellbuf.Buffer, p Projection, style cellbuf.StyleKey) {
	step := max(1, int(math.Ceil(2/p.Scale)))
	x0, y0 := p.ToWorld(image.Pt(0, 0))
	x1, y1 := p.ToWorld(image.Pt(buf.W, buf.H))
	for wy := floorTo(y0, step); float64(wy) <= y1; wy += step {
		for wx := floorTo(x0, step); float64(wx) <= x1; wx += step {
			s := p.ToScreen(image.Pt(wx, wy))
			buf.Plot(s.X, s.Y, '·', style, 0)
		}
	}
}

// floorTo rounds v down to a multiple of m, correctly for negatives.
func floorTo(v float64, m int) int {
	return int(math.Floor(v/float64(m))) * m
}
