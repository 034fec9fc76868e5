package walkthrough

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is returned by NewCatalog when the step table breaks the
// id or icon-name invariants.
var ErrInvalidCatalog = errors.New("invalid walkthrough catalog")

// Catalog is the ordered, fixed list of steps. Step i (0-based) always has
// ID i+1. Only the arrow positions inside a Catalog change after construction.
type Catalog struct {
	steps  []Step
	byIcon map[string]int
}

// NewCatalog validates steps and indexes them by icon name.
// IDs must be dense and ordered starting at 1; icon names must be unique.
func NewCatalog(steps []Step) (*Catalog, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidCatalog)
	}

	c := &Catalog{
		steps:  make([]Step, len(steps)),
		byIcon: make(map[string]int, len(steps)),
	}
	copy(c.steps, steps)

	for i, s := range c.steps {
		if s.ID != i+1 {
			return nil, fmt.Errorf("%w: step at index %d has id %d, want %d", ErrInvalidCatalog, i, s.ID, i+1)
		}
		if s.IconName == "" {
			return nil, fmt.Errorf("%w: step %d has no icon", ErrInvalidCatalog, s.ID)
		}
		if prev, dup := c.byIcon[s.IconName]; dup {
			return nil, fmt.Errorf("%w: icon %q used by steps %d and %d", ErrInvalidCatalog, s.IconName, prev+1, s.ID)
		}
		switch s.Arrow.Direction {
		case Left, Right:
		default:
			return nil, fmt.Errorf("%w: step %d has direction %q", ErrInvalidCatalog, s.ID, s.Arrow.Direction)
		}
		switch s.Arrow.Curve {
		case Gentle, Steep:
		default:
			return nil, fmt.Errorf("%w: step %d has curve %q", ErrInvalidCatalog, s.ID, s.Arrow.Curve)
		}
		c.byIcon[s.IconName] = i
	}

	return c, nil
}

// MustDefaultCatalog returns the built-in 11-step catalog.
func MustDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultSteps())
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of steps.
func (c *Catalog) Len() int {
	return len(c.steps)
}

// Steps returns a copy of the steps in order.
func (c *Catalog) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// ByID returns the step with the given id.
func (c *Catalog) ByID(id int) (Step, bool) {
	if id < 1 || id > len(c.steps) {
		return Step{}, false
	}
	return c.steps[id-1], true
}

// ByIcon returns the step whose icon name equals name.
func (c *Catalog) ByIcon(name string) (Step, bool) {
	i, ok := c.byIcon[name]
	if !ok {
		return Step{}, false
	}
	return c.steps[i], true
}

// setPositions overwrites the arrow endpoints of step id in place.
// Out-of-range ids are ignored.
func (c *Catalog) setPositions(id int, start, end Point) bool {
	if id < 1 || id > len(c.steps) {
		return false
	}
	c.steps[id-1].Arrow.Start = start
	c.steps[id-1].Arrow.End = end
	return true
}

// DefaultSteps returns the built-in tour, right-hand icons from top to bottom.
func DefaultSteps() []Step {
	return []Step{
		{ID: 1, IconName: "forfeit", Text: "Exit the application anytime", Arrow: ArrowConfig{Direction: Right, Curve: Gentle}},
		{ID: 2, IconName: "help", Text: "Get help and support", Arrow: ArrowConfig{Direction: Right, Curve: Gentle}},
		{ID: 3, IconName: "prep", Text: "Prepare for your session", Arrow: ArrowConfig{Direction: Right, Curve: Gentle}},
		{ID: 4, IconName: "location", Text: "Set your location", Arrow: ArrowConfig{Direction: Right, Curve: Gentle}},
		{ID: 5, IconName: "chat", Text: "Open chat interface", Arrow: ArrowConfig{Direction: Right, Curve: Steep}},
		{ID: 6, IconName: "more", Text: "Access more options", Arrow: ArrowConfig{Direction: Left, Curve: Gentle}},
		{ID: 7, IconName: "begin", Text: "Start your session", Arrow: ArrowConfig{Direction: Left, Curve: Steep}},
		{ID: 8, IconName: "outfit", Text: "Choose your outfit", Arrow: ArrowConfig{Direction: Left, Curve: Steep}},
		{ID: 9, IconName: "selfie & video", Text: "Take selfie or record video", Arrow: ArrowConfig{Direction: Left, Curve: Steep}},
		{ID: 10, IconName: "video", Text: "Record a video", Arrow: ArrowConfig{Direction: Left, Curve: Gentle}},
		{ID: 11, IconName: "face", Text: "Face recognition features", Arrow: ArrowConfig{Direction: Left, Curve: Gentle}},
	}
}
