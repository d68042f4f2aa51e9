// Package drawutil rasterises the graph into a cellbuf.Buffer: Bresenham
// segments with per-step line characters, arrowheads for directed edges,
// the grid lattice, and the projection between grid and screen cells.
package drawutil

import "image"

// Bresenham returns the cells on the line from a to b, both endpoints
// included. The loop is capped at dx+dy+2 steps.
func Bresenham(a, b image.Point) []image.Point {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	p := a

	pts := make([]image.Point, 0, dx+dy+1)
	for range dx + dy + 2 {
		pts = append(pts, p)
		if p == b {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			p.X += sx
		}
		if e2 < dx {
			err += dx
			p.Y += sy
		}
	}
	return pts
}

// LineChar picks the stroke for a step of (dx, dy).
func LineChar(dx, dy int) rune {
	switch {
	case dx == 0:
		return '│'
	case dy == 0:
		return '─'
	case (dx > 0) == (dy > 0):
		return '\\'
	}
	return '/'
}

// ArrowChar points along the dominant axis of (dx, dy).
func ArrowChar(dx, dy int) rune {
	if abs(dy) > abs(dx) {
		if dy > 0 {
			return '▼'
		}
		return '▲'
	}
	if dx > 0 {
		return '►'
	}
	return '◄'
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
