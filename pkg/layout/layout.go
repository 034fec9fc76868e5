// Package layout places the main page elements in pixel space and measures
// the arrow endpoints the walkthrough draws between the text panel and each
// icon.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/vanderheijden86/walkthrough/pkg/metrics"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// Text panel geometry.
const (
	PanelMargin = 16.0
	PanelWidth  = 250.0
	PanelHeight = 120.0

	DefaultIconSize = 48.83
)

// Rect is an axis-aligned rectangle in viewport pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) MidY() float64   { return r.Y + r.H/2 }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() walkthrough.Point {
	return walkthrough.Point{X: r.X + r.W/2, Y: r.MidY()}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p walkthrough.Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Viewport is the drawable page size in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxDimension bounds each viewport side in pixels.
const MaxDimension = 16384

// ErrInvalidViewport reports a viewport side that is not a finite value in
// (0, MaxDimension].
var ErrInvalidViewport = errors.New("invalid viewport")

// CheckDimension validates one viewport side.
func CheckDimension(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxDimension {
		return fmt.Errorf("%w: %g is not in (0, %d]", ErrInvalidViewport, v, MaxDimension)
	}
	return nil
}

// Validate checks both sides of vp.
func (vp Viewport) Validate() error {
	if err := CheckDimension(vp.Width); err != nil {
		return fmt.Errorf("width: %w", err)
	}
	if err := CheckDimension(vp.Height); err != nil {
		return fmt.Errorf("height: %w", err)
	}
	return nil
}

// IconPlacement positions an icon relative to the viewport's right edge.
// Right may be negative, pushing the icon partly off screen.
type IconPlacement struct {
	Name   string
	Width  float64
	Height float64
	Right  float64
	Top    float64
}

// DefaultIcons returns the right-side icon column in catalog order.
func DefaultIcons() []IconPlacement {
	return []IconPlacement{
		{Name: "forfeit", Width: DefaultIconSize, Height: DefaultIconSize, Right: -10, Top: 20},
		{Name: "help", Width: DefaultIconSize, Height: DefaultIconSize, Right: -7, Top: 65},
		{Name: "prep", Width: DefaultIconSize, Height: DefaultIconSize, Right: -7, Top: 120},
		{Name: "location", Width: DefaultIconSize, Height: DefaultIconSize, Right: -7, Top: 175},
		{Name: "chat", Width: DefaultIconSize, Height: DefaultIconSize, Right: -7, Top: 230},
		{Name: "more", Width: DefaultIconSize, Height: DefaultIconSize, Right: 4, Top: 275},
		{Name: "begin", Width: DefaultIconSize, Height: DefaultIconSize, Right: 40, Top: 295},
		{Name: "outfit", Width: DefaultIconSize, Height: DefaultIconSize, Right: 65, Top: 340},
		{Name: "selfie & video", Width: 68.83, Height: 68.83, Right: 1, Top: 320},
		{Name: "video", Width: DefaultIconSize, Height: DefaultIconSize, Right: 40, Top: 383},
		{Name: "face", Width: DefaultIconSize, Height: DefaultIconSize, Right: 1, Top: 400},
	}
}

// IconRect returns the icon's rectangle in viewport coordinates.
func IconRect(vp Viewport, p IconPlacement) Rect {
	return Rect{
		X: vp.Width - p.Right - p.Width,
		Y: p.Top,
		W: p.Width,
		H: p.Height,
	}
}

// TextPanel returns the text panel rectangle. The panel sits on the left when
// the arrow points right and on the right when it points left.
func TextPanel(vp Viewport, dir walkthrough.Direction) Rect {
	r := Rect{
		X: PanelMargin,
		Y: (vp.Height - PanelHeight) / 2,
		W: PanelWidth,
		H: PanelHeight,
	}
	if dir == walkthrough.Left {
		r.X = vp.Width - PanelMargin - PanelWidth
	}
	return r
}

// Measurement is one step's arrow endpoints.
type Measurement struct {
	StepID int
	Start  walkthrough.Point
	End    walkthrough.Point
}

// Measure computes endpoints for every icon: the start is the midpoint of the
// panel's right edge, the end the midpoint of the icon's left edge. The step
// id is the icon's index plus one.
func Measure(vp Viewport, icons []IconPlacement, dir walkthrough.Direction) []Measurement {
	defer metrics.Timer(metrics.LayoutMeasure)()

	panel := TextPanel(vp, dir)
	start := walkthrough.Point{X: panel.Right(), Y: panel.MidY()}

	out := make([]Measurement, len(icons))
	for i, icon := range icons {
		r := IconRect(vp, icon)
		out[i] = Measurement{
			StepID: i + 1,
			Start:  start,
			End:    walkthrough.Point{X: r.Left(), Y: r.MidY()},
		}
	}
	return out
}

// Feed measures against each step's own arrow direction and pushes the
// results into w. Icons beyond the catalog are dropped by UpdatePositions.
func Feed(w *walkthrough.Walkthrough, vp Viewport, icons []IconPlacement) {
	byDir := map[walkthrough.Direction][]Measurement{}
	for _, dir := range []walkthrough.Direction{walkthrough.Right, walkthrough.Left} {
		byDir[dir] = Measure(vp, icons, dir)
	}
	for i := range icons {
		dir := walkthrough.Right
		if step, ok := w.StepByID(i + 1); ok {
			dir = step.Arrow.Direction
		}
		m := byDir[dir][i]
		w.UpdatePositions(m.StepID, m.Start, m.End)
	}
}

// IconAt returns the index of the topmost icon containing p, or -1. Later
// icons are drawn over earlier ones.
func IconAt(vp Viewport, icons []IconPlacement, p walkthrough.Point) int {
	for i := len(icons) - 1; i >= 0; i-- {
		if IconRect(vp, icons[i]).Contains(p) {
			return i
		}
	}
	return -1
}
