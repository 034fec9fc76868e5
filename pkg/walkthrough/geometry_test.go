package walkthrough

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCurveRightGentle(t *testing.T) {
	p := Curve(ArrowConfig{
		Direction: Right,
		Curve:     Gentle,
		Start:     Point{X: 0, Y: 0},
		End:       Point{X: 100, Y: 0},
	})

	if p.C1.X != 25 || p.C2.X != 75 {
		t.Errorf("control x = %v, %v; want 25, 75", p.C1.X, p.C2.X)
	}
	if p.C1.Y != -50 || p.C2.Y != 50 {
		t.Errorf("control y = %v, %v; want -50, 50", p.C1.Y, p.C2.Y)
	}
	if p.Start != (Point{}) || p.End != (Point{X: 100}) {
		t.Errorf("endpoints = %v, %v", p.Start, p.End)
	}
}

func TestCurveSteepOffset(t *testing.T) {
	p := Curve(ArrowConfig{
		Direction: Right,
		Curve:     Steep,
		Start:     Point{X: 10, Y: 100},
		End:       Point{X: 50, Y: 300},
	})
	// midpoint y = 200
	if p.C1.Y != 100 || p.C2.Y != 300 {
		t.Errorf("control y = %v, %v; want 100, 300", p.C1.Y, p.C2.Y)
	}
	if p.C1.X != 20 || p.C2.X != 40 {
		t.Errorf("control x = %v, %v; want 20, 40", p.C1.X, p.C2.X)
	}
}

func TestCurveLeftLiteralArithmetic(t *testing.T) {
	// End to the left of Start: controls fall between the two.
	p := Curve(ArrowConfig{
		Direction: Left,
		Curve:     Gentle,
		Start:     Point{X: 200, Y: 0},
		End:       Point{X: 100, Y: 0},
	})
	if p.C1.X != 175 || p.C2.X != 125 {
		t.Errorf("control x = %v, %v; want 175, 125", p.C1.X, p.C2.X)
	}

	// End to the right of Start: start - 0.25*(start-end) = start + 0.25*(end-start)
	// so the controls still track the span.
	p = Curve(ArrowConfig{
		Direction: Left,
		Curve:     Gentle,
		Start:     Point{X: 100, Y: 0},
		End:       Point{X: 200, Y: 0},
	})
	if p.C1.X != 125 || p.C2.X != 175 {
		t.Errorf("control x = %v, %v; want 125, 175", p.C1.X, p.C2.X)
	}
}

func TestCurvedPathSentinel(t *testing.T) {
	if _, ok := CurvedPath(ArrowConfig{Direction: Right, Curve: Gentle}); ok {
		t.Error("Expected unmeasured config to produce no path")
	}
	cfg := ArrowConfig{Direction: Right, Curve: Gentle, Start: Point{X: 0, Y: 0}, End: Point{X: 5, Y: 0}}
	if _, ok := CurvedPath(cfg); !ok {
		t.Error("Expected a path once either endpoint is non-zero")
	}
}

func TestPathD(t *testing.T) {
	p := Curve(ArrowConfig{
		Direction: Right,
		Curve:     Gentle,
		Start:     Point{X: 0, Y: 0},
		End:       Point{X: 100, Y: 0},
	})
	want := "M 0 0 C 25 -50, 75 50, 100 0"
	if got := p.D(); got != want {
		t.Errorf("D() = %q, want %q", got, want)
	}

	p = Path{Start: Point{X: 1.5, Y: 2.25}, C1: Point{X: 3, Y: 4}, C2: Point{X: 5, Y: 6}, End: Point{X: 7.125, Y: 8}}
	want = "M 1.5 2.25 C 3 4, 5 6, 7.125 8"
	if got := p.D(); got != want {
		t.Errorf("D() = %q, want %q", got, want)
	}
}

func TestPathAtEndpoints(t *testing.T) {
	p := Curve(ArrowConfig{
		Direction: Right,
		Curve:     Steep,
		Start:     Point{X: 10, Y: 20},
		End:       Point{X: 300, Y: 90},
	})
	if got := p.At(0); got != p.Start {
		t.Errorf("At(0) = %v, want %v", got, p.Start)
	}
	end := p.At(1)
	if !approx(end.X, p.End.X) || !approx(end.Y, p.End.Y) {
		t.Errorf("At(1) = %v, want %v", end, p.End)
	}
	// clamped
	if got := p.At(-1); got != p.Start {
		t.Errorf("At(-1) = %v, want clamped start", got)
	}
}

func TestPathAtMidpointSymmetric(t *testing.T) {
	p := Curve(ArrowConfig{
		Direction: Right,
		Curve:     Gentle,
		Start:     Point{X: 0, Y: 0},
		End:       Point{X: 100, Y: 0},
	})
	mid := p.At(0.5)
	// 0.125*0 + 0.375*25 + 0.375*75 + 0.125*100 = 50
	// 0.375*-50 + 0.375*50 = 0
	if !approx(mid.X, 50) || !approx(mid.Y, 0) {
		t.Errorf("At(0.5) = %v, want (50,0)", mid)
	}
}

func TestPathSample(t *testing.T) {
	p := Path{End: Point{X: 10, Y: 10}, C1: Point{X: 0, Y: 0}, C2: Point{X: 10, Y: 10}}
	pts := p.Sample(4)
	if len(pts) != 5 {
		t.Fatalf("Expected 5 samples, got %d", len(pts))
	}
	if pts[0] != p.Start {
		t.Errorf("first sample = %v", pts[0])
	}
	if len(p.Sample(0)) != 2 {
		t.Error("Sample(0) should clamp to a single segment")
	}
}

func TestPathHeadingAndChord(t *testing.T) {
	p := Path{Start: Point{}, C1: Point{}, C2: Point{X: 0, Y: 10}, End: Point{X: 0, Y: 20}}
	h := p.Heading()
	if !approx(h.X, 0) || !approx(h.Y, 1) {
		t.Errorf("Heading() = %v, want (0,1)", h)
	}
	if !approx(p.ChordLength(), 20) {
		t.Errorf("ChordLength() = %v, want 20", p.ChordLength())
	}
	if (Path{}).Heading() != (Point{}) {
		t.Error("degenerate heading should be zero")
	}
}

func TestStrokeColor(t *testing.T) {
	tests := []struct {
		icon string
		want string
	}{
		{"forfeit", "#FF4B4B"},
		{"help", "#4BB4FF"},
		{"chat", "#4BFF91"},
		{"unknown-icon", "#FFFFFF"},
		{"", "#FFFFFF"},
		{"default", "#FFFFFF"},
	}
	for _, tt := range tests {
		if got := StrokeColor(tt.icon); got != tt.want {
			t.Errorf("StrokeColor(%q) = %s, want %s", tt.icon, got, tt.want)
		}
	}
}

func TestMarkerFor(t *testing.T) {
	if m := MarkerFor(Right); m.ID != "arrowhead-right" || m.RefX != 9 {
		t.Errorf("MarkerFor(Right) = %+v", m)
	}
	if m := MarkerFor(Left); m.ID != "arrowhead-left" || m.RefX != 1 {
		t.Errorf("MarkerFor(Left) = %+v", m)
	}
	if len(Markers()) != 2 {
		t.Error("Expected two markers")
	}
}
