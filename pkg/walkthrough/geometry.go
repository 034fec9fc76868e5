package walkthrough

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vertical control point offsets, in pixels.
const (
	GentleOffset = 50.0
	SteepOffset  = 100.0
)

// DefaultStrokeColor is used for icons without a dedicated arrow colour.
const DefaultStrokeColor = "#FFFFFF"

var strokeColors = map[string]string{
	"forfeit": "#FF4B4B",
	"help":    "#4BB4FF",
	"chat":    "#4BFF91",
}

// Path is a single cubic Bézier segment from Start to End.
type Path struct {
	Start Point `json:"start"`
	C1    Point `json:"c1"`
	C2    Point `json:"c2"`
	End   Point `json:"end"`
}

// Offset returns the vertical control point offset for a curve type.
func (c CurveType) Offset() float64 {
	if c == Steep {
		return SteepOffset
	}
	return GentleOffset
}

// Curve computes the arrow curve for cfg. Horizontal control points sit at a
// quarter and three quarters of the span, measured forward from Start for
// Right and backward for Left; vertical control points straddle the midpoint
// by the curve's offset.
//
// The Left formula s - k(s-e) reduces to s + k(e-s), so both directions place
// the controls inside the span whichever side End is on.
func Curve(cfg ArrowConfig) Path {
	s, e := cfg.Start, cfg.End

	var c1x, c2x float64
	if cfg.Direction == Right {
		c1x = s.X + (e.X-s.X)*0.25
		c2x = s.X + (e.X-s.X)*0.75
	} else {
		c1x = s.X - (s.X-e.X)*0.25
		c2x = s.X - (s.X-e.X)*0.75
	}

	off := cfg.Curve.Offset()
	midY := (s.Y + e.Y) / 2

	return Path{
		Start: s,
		C1:    Point{X: c1x, Y: midY - off},
		C2:    Point{X: c2x, Y: midY + off},
		End:   e,
	}
}

// CurvedPath is Curve for a measured config. It returns false while the
// positions are still the (0,0) sentinel; callers hide the arrow until a
// measurement arrives.
func CurvedPath(cfg ArrowConfig) (Path, bool) {
	if !cfg.Measured() {
		return Path{}, false
	}
	return Curve(cfg), true
}

// D renders the path as SVG path data.
func (p Path) D() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, p.Start)
	b.WriteString(" C ")
	writePoint(&b, p.C1)
	b.WriteString(", ")
	writePoint(&b, p.C2)
	b.WriteString(", ")
	writePoint(&b, p.End)
	return b.String()
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(strconv.FormatFloat(pt.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(pt.Y, 'f', -1, 64))
}

// At evaluates the curve at t in [0,1].
func (p Path) At(t float64) Point {
	t = math.Max(0, math.Min(1, t))
	u := 1 - t

	v := r2.Scale(u*u*u, vec(p.Start))
	v = r2.Add(v, r2.Scale(3*u*u*t, vec(p.C1)))
	v = r2.Add(v, r2.Scale(3*u*t*t, vec(p.C2)))
	v = r2.Add(v, r2.Scale(t*t*t, vec(p.End)))
	return Point{X: v.X, Y: v.Y}
}

// Sample returns n+1 evenly spaced points along the curve, endpoints included.
func (p Path) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, p.At(float64(i)/float64(n)))
	}
	return pts
}

// ChordLength is the straight-line distance between the endpoints.
func (p Path) ChordLength() float64 {
	return r2.Norm(r2.Sub(vec(p.End), vec(p.Start)))
}

// Heading returns the unit tangent at the end of the curve, used to orient
// arrow heads drawn without SVG markers.
func (p Path) Heading() Point {
	d := r2.Sub(vec(p.End), vec(p.C2))
	if n := r2.Norm(d); n > 0 {
		d = r2.Scale(1/n, d)
	}
	return Point{X: d.X, Y: d.Y}
}

func vec(p Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// StrokeColor returns the arrow colour for an icon.
func StrokeColor(iconName string) string {
	if c, ok := strokeColors[iconName]; ok {
		return c
	}
	return DefaultStrokeColor
}

// Marker describes an SVG arrow-head marker.
type Marker struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	RefX   float64 `json:"ref_x"`
	RefY   float64 `json:"ref_y"`
	Points string  `json:"points"`
}

var (
	markerRight = Marker{ID: "arrowhead-right", Width: 10, Height: 7, RefX: 9, RefY: 3.5, Points: "0 0, 10 3.5, 0 7"}
	markerLeft  = Marker{ID: "arrowhead-left", Width: 10, Height: 7, RefX: 1, RefY: 3.5, Points: "10 0, 0 3.5, 10 7"}
)

// MarkerFor returns the arrow head for a direction. Curve type has no effect.
func MarkerFor(d Direction) Marker {
	if d == Left {
		return markerLeft
	}
	return markerRight
}

// Markers returns both arrow-head markers, right first.
func Markers() []Marker {
	return []Marker{markerRight, markerLeft}
}
