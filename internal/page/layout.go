package page

import (
	"github.com/chewxy/math32"
)

// Layout assigns each canvas id a container rectangle for a window of the given size.
// Ids missing from the result get a zero rectangle.
type Layout interface {
	Arrange(ids []string, width, height int) map[string]Rect
}

// GridLayout tiles canvases row by row. Columns 0 picks the smallest square-ish grid.
type GridLayout struct {
	Columns int
	Gap     int // pixels between cells and around the edge
}

// Arrange implements Layout.
func (g GridLayout) Arrange(ids []string, width, height int) map[string]Rect {
	out := make(map[string]Rect, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	cols := g.Columns
	if cols <= 0 {
		cols = int(math32.Ceil(math32.Sqrt(float32(n))))
	}
	rows := (n + cols - 1) / cols

	cellW := (width - g.Gap*(cols+1)) / cols
	cellH := (height - g.Gap*(rows+1)) / rows
	if cellW < 0 {
		cellW = 0
	}
	if cellH < 0 {
		cellH = 0
	}
	for i, id := range ids {
		col, row := i%cols, i/cols
		out[id] = Rect{
			X:      g.Gap + col*(cellW+g.Gap),
			Y:      g.Gap + row*(cellH+g.Gap),
			Width:  cellW,
			Height: cellH,
		}
	}
	return out
}

// FixedLayout gives every listed canvas a fixed rectangle regardless of window size.
type FixedLayout map[string]Rect

// Arrange implements Layout.
func (f FixedLayout) Arrange(ids []string, _, _ int) map[string]Rect {
	out := make(map[string]Rect, len(ids))
	for _, id := range ids {
		out[id] = f[id]
	}
	return out
}
