// Package walkthrough implements the guided icon tour: a fixed catalog of
// steps, the state machine that moves through them, and the curved-arrow
// geometry used to point from the text panel to the highlighted icon.
//
// A Walkthrough is an explicitly constructed context object. It is not safe for
// concurrent use; the embedding UI drives it from a single goroutine and
// observes changes through Subscribe.
package walkthrough

import "fmt"

// Point is a position in viewport pixel coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// IsZero reports whether p is the unmeasured sentinel (0,0).
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Direction is the side the arrow travels towards.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// CurveType selects how far the control points bow away from the midpoint.
type CurveType string

const (
	Gentle CurveType = "gentle"
	Steep  CurveType = "steep"
)

// ArrowConfig describes the arrow drawn for a step. Direction and Curve are
// authored with the catalog; Start and End are supplied by the UI every time it
// measures the layout and stay at the sentinel until the first measurement.
type ArrowConfig struct {
	Direction Direction `json:"direction"`
	Curve     CurveType `json:"curve_type"`
	Start     Point     `json:"start"`
	End       Point     `json:"end"`
}

// Measured reports whether real positions have been supplied.
func (a ArrowConfig) Measured() bool {
	return !(a.Start.IsZero() && a.End.IsZero())
}

// Step is one stage of the tour.
type Step struct {
	ID       int         `json:"id"`
	IconName string      `json:"icon"`
	Text     string      `json:"text"`
	Arrow    ArrowConfig `json:"arrow"`
}

// State is the observable state of a Walkthrough.
// CurrentStep is 0 while inactive, otherwise 1..TotalSteps.
type State struct {
	CurrentStep int  `json:"current_step"`
	IsActive    bool `json:"is_active"`
	TotalSteps  int  `json:"total_steps"`
}

func (s State) String() string {
	if !s.IsActive {
		return fmt.Sprintf("inactive (0/%d)", s.TotalSteps)
	}
	return fmt.Sprintf("step %d/%d", s.CurrentStep, s.TotalSteps)
}
