// Package cellbuf is a character raster for the graph canvas. Each cell
// holds a rune, a StyleKey and a depth, so later strokes only cover earlier
// ones when they sit at the same depth or above: path edges over plain
// edges, nodes over both.
//
// All runes are assumed to be single-width.
package cellbuf

// StyleKey identifies a visual style. The caller maps keys to lipgloss
// styles at render time.
type StyleKey int

// Depth orders strokes. Background cells sit at depth 0.
type Depth int

// Cell is one character of the raster.
type Cell struct {
	Ch    rune
	Style StyleKey
	Z     Depth
}

// Buffer is a W x H grid of cells, indexed [row][col].
type Buffer struct {
	W, H  int
	Cells [][]Cell
	bg    StyleKey
}

// New creates a blank buffer in the background style bg.
func New(w, h int, bg StyleKey) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h), bg: bg}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Clear()
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Plot writes ch at (x, y) unless a deeper stroke is already there. It
// reports whether the cell changed. Out-of-bounds writes are ignored.
func (b *Buffer) Plot(x, y int, ch rune, style StyleKey, z Depth) bool {
	if !b.InBounds(x, y) || b.Cells[y][x].Z > z {
		return false
	}
	b.Cells[y][x] = Cell{Ch: ch, Style: style, Z: z}
	return true
}

// Text writes s from (x, y) rightwards at depth z.
func (b *Buffer) Text(x, y int, s string, style StyleKey, z Depth) {
	i := 0
	for _, ch := range s {
		b.Plot(x+i, y, ch, style, z)
		i++
	}
}

// At returns the cell at (x, y); out of bounds yields a blank background
// cell.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{Ch: ' ', Style: b.bg}
	}
	return b.Cells[y][x]
}

// Clear blanks every cell back to the background.
func (b *Buffer) Clear() {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: b.bg}
		}
	}
}
