package drawutil

import (
	"image"

	"github.com/wesen/graphwalk/pkg/cellbuf"
)

// stepChar is the stroke for pts[i], taken from the step that leaves it
// (or enters it, for the last point).
func stepChar(pts []image.Point, i int) rune {
	var d image.Point
	switch {
	case i < len(pts)-1:
		d = pts[i+1].Sub(pts[i])
	case i > 0:
		d = pts[i].Sub(pts[i-1])
	}
	return LineChar(d.X, d.Y)
}

// DrawSegment strokes the screen segment a-b at depth z. Endpoint cells
// are left to the node glyphs drawn later.
func DrawSegment(buf *cellbuf.Buffer, a, b image.Point, style cellbuf.StyleKey, z cellbuf.Depth) {
	pts := Bresenham(a, b)
	for i := 1; i < len(pts)-1; i++ {
		buf.Plot(pts[i].X, pts[i].Y, stepChar(pts, i), style, z)
	}
}

// DrawArrowSegment strokes a-b and puts an arrowhead on the last cell
// before b.
func DrawArrowSegment(buf *cellbuf.Buffer, a, b image.Point, style cellbuf.StyleKey, z cellbuf.Depth) {
	pts := Bresenham(a, b)
	if len(pts) < 3 {
		return
	}
	last := len(pts) - 2
	for i := 1; i < last; i++ {
		buf.Plot(pts[i].X, pts[i].Y, stepChar(pts, i), style, z)
	}
	d := b.Sub(a)
	buf.Plot(pts[last].X, pts[last].Y, ArrowChar(d.X, d.Y), style, z)
}
