package layout

import (
	"math"

	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// Grid maps viewport pixels onto a terminal cell grid.
type Grid struct {
	Cols, Rows   int
	CellW, CellH float64
}

// NewGrid fits vp into cols×rows cells. Non-positive dimensions yield a 1×1
// grid.
func NewGrid(vp Viewport, cols, rows int) Grid {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return Grid{
		Cols:  cols,
		Rows:  rows,
		CellW: vp.Width / float64(cols),
		CellH: vp.Height / float64(rows),
	}
}

// Cell returns the column and row containing p, clamped to the grid.
func (g Grid) Cell(p walkthrough.Point) (col, row int) {
	if g.CellW <= 0 || g.CellH <= 0 {
		return 0, 0
	}
	col = int(math.Floor(p.X / g.CellW))
	row = int(math.Floor(p.Y / g.CellH))
	return clamp(col, 0, g.Cols-1), clamp(row, 0, g.Rows-1)
}

// Point returns the pixel at the centre of cell (col, row).
func (g Grid) Point(col, row int) walkthrough.Point {
	return walkthrough.Point{
		X: (float64(col) + 0.5) * g.CellW,
		Y: (float64(row) + 0.5) * g.CellH,
	}
}

// CellRect returns r in cell units: top-left cell and the size in cells,
// at least 1×1.
func (g Grid) CellRect(r Rect) (col, row, w, h int) {
	col, row = g.Cell(walkthrough.Point{X: r.Left(), Y: r.Top()})
	c2, r2 := g.Cell(walkthrough.Point{X: r.Right(), Y: r.Bottom()})
	return col, row, max(c2-col, 1), max(r2-row, 1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
