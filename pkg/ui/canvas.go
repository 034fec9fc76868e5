package ui

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// cellPos is a terminal cell.
type cellPos struct{ col, row int }

// curveCells is a rasterised arrow: one glyph per cell, head last.
type curveCells struct {
	glyphs map[cellPos]rune
	head   cellPos
}

// rasterizeCurve maps the Bézier path onto g. Consecutive samples in the same
// cell collapse; each cell's glyph follows the local direction of travel and
// the final cell carries the arrow head.
func rasterizeCurve(path walkthrough.Path, g layout.Grid) curveCells {
	n := 4 * max(g.Cols, g.Rows)
	pts := path.Sample(n)

	cc := curveCells{glyphs: make(map[cellPos]rune, len(pts))}
	var order []cellPos
	for _, p := range pts {
		col, row := g.Cell(p)
		c := cellPos{col, row}
		if _, seen := cc.glyphs[c]; !seen {
			order = append(order, c)
			cc.glyphs[c] = 0
		}
	}
	if len(order) == 0 {
		return cc
	}

	for i, c := range order {
		prev, next := c, c
		if i > 0 {
			prev = order[i-1]
		}
		if i < len(order)-1 {
			next = order[i+1]
		}
		cc.glyphs[c] = strokeGlyph(next.col-prev.col, next.row-prev.row)
	}

	cc.head = order[len(order)-1]
	cc.glyphs[cc.head] = headGlyph(path.Heading())
	return cc
}

func strokeGlyph(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	case (dc > 0) == (dr > 0):
		return '╲'
	default:
		return '╱'
	}
}

func headGlyph(h walkthrough.Point) rune {
	if math.Abs(h.X) >= math.Abs(h.Y) {
		if h.X < 0 {
			return '◀'
		}
		return '▶'
	}
	if h.Y < 0 {
		return '▲'
	}
	return '▼'
}

// render composites the curve onto base in style. Runs of adjacent cells on
// a row are written in one pass.
func (cc curveCells) render(base string, style lipgloss.Style, width, height int) string {
	rows := map[int][]int{}
	for c := range cc.glyphs {
		rows[c.row] = append(rows[c.row], c.col)
	}
	for row, cols := range rows {
		sort.Ints(cols)
		start := 0
		for i := 1; i <= len(cols); i++ {
			if i < len(cols) && cols[i] == cols[i-1]+1 {
				continue
			}
			run := make([]rune, 0, i-start)
			for _, col := range cols[start:i] {
				run = append(run, cc.glyphs[cellPos{col, row}])
			}
			base = overlayAt(base, style.Render(string(run)), cols[start], row, width, height)
			start = i
		}
	}
	return base
}
