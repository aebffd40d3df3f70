package tui

import (
	"github.com/vovakirdan/service-drop/internal/core"
)

// StatusRows is the height of the status panel under the play area.
const StatusRows = 4

// Layout maps game pixels to terminal cells.
// A cell is Density px wide and twice that tall, matching the usual glyph aspect.
type Layout struct {
	Cols    int
	Rows    int
	Density float64
}

// NewLayout builds a layout for a terminal of the given size.
// The status panel rows are taken off the bottom.
func NewLayout(termW, termH int, density float64) Layout {
	return Layout{
		Cols:    core.Max(termW, 0),
		Rows:    core.Max(termH-StatusRows, 0),
		Density: density,
	}
}

// Display returns the pixel display the play area represents.
func (l Layout) Display(iconSize int) core.Display {
	return core.Display{
		Width:    int(float64(l.Cols) * l.Density),
		Height:   int(float64(l.Rows) * l.cellHeight()),
		Density:  l.Density,
		IconSize: iconSize,
	}
}

func (l Layout) cellHeight() float64 {
	return 2 * l.Density
}

// CellX converts a horizontal pixel position to a column.
func (l Layout) CellX(px int) int {
	if l.Density <= 0 {
		return 0
	}
	return int(float64(px) / l.Density)
}

// CellY converts a vertical pixel position to a row.
func (l Layout) CellY(py int) int {
	if l.Density <= 0 {
		return 0
	}
	return int(float64(py) / l.cellHeight())
}

// PxX converts a column delta to pixels.
func (l Layout) PxX(cols int) int {
	return int(float64(cols) * l.Density)
}

// CellRect converts a pixel rectangle to cells. Never collapses below one cell.
func (l Layout) CellRect(r core.Rect) core.Rect {
	left, top := l.CellX(r.Left()), l.CellY(r.Top())
	right, bottom := l.CellX(r.Right()), l.CellY(r.Bottom())
	return core.NewRectEdges(left, top, core.Max(right, left+1), core.Max(bottom, top+1))
}
