package tui

import "image"

const panelWidth = 30

// regions is the screen split: a one-row header and status bar, a side
// panel on the right and the canvas in what is left.
type regions struct {
	header, status, panel, canvas image.Rectangle
}

// layoutFor splits a w x h terminal. Regions that do not fit are empty.
func layoutFor(w, h int) regions {
	var r regions
	if w <= 0 || h <= 0 {
		return r
	}
	r.header = image.Rect(0, 0, w, 1)
	if h > 1 {
		r.status = image.Rect(0, h-1, w, h)
	}
	pw := panelWidth
	if w < 3*panelWidth {
		pw = 0
	}
	if h > 2 {
		r.canvas = image.Rect(0, 1, w-pw, h-1)
		if pw > 0 {
			r.panel = image.Rect(w-pw, 1, w, h-1)
		}
	}
	return r
}
