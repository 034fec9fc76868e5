package walkthrough

import (
	"github.com/vanderheijden86/walkthrough/pkg/debug"
)

type subscriber struct {
	id int
	fn func(State)
}

// Walkthrough owns the step catalog and the tour state for one UI session.
type Walkthrough struct {
	catalog *Catalog
	state   State

	subs   []subscriber
	nextID int
}

// New creates an inactive walkthrough over cat.
func New(cat *Catalog) *Walkthrough {
	return &Walkthrough{
		catalog: cat,
		state: State{
			CurrentStep: 0,
			IsActive:    false,
			TotalSteps:  cat.Len(),
		},
	}
}

// NewDefault creates an inactive walkthrough over the built-in catalog.
func NewDefault() *Walkthrough {
	return New(MustDefaultCatalog())
}

// Subscribe registers fn to be called synchronously with every new state, in
// registration order. The current state is not replayed; use State for that.
// The returned function removes the subscription and may be called repeatedly.
func (w *Walkthrough) Subscribe(fn func(State)) (unsubscribe func()) {
	w.nextID++
	id := w.nextID
	w.subs = append(w.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range w.subs {
			if s.id == id {
				w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
				return
			}
		}
	}
}

// publish stores next and notifies every subscriber registered at call time.
func (w *Walkthrough) publish(next State) {
	w.state = next
	debug.Log("walkthrough: %s", next)

	subs := make([]subscriber, len(w.subs))
	copy(subs, w.subs)
	for _, s := range subs {
		s.fn(next)
	}
}

// Start activates the tour at step 1, restarting it if already active.
func (w *Walkthrough) Start() {
	next := w.state
	next.CurrentStep = 1
	next.IsActive = true
	w.publish(next)
}

// Stop deactivates the tour from any state.
func (w *Walkthrough) Stop() {
	next := w.state
	next.CurrentStep = 0
	next.IsActive = false
	w.publish(next)
}

// Next moves to the following step. It does nothing on the last step or while
// inactive; reaching the end never deactivates the tour.
func (w *Walkthrough) Next() {
	if !w.state.IsActive || w.state.CurrentStep >= w.state.TotalSteps {
		return
	}
	next := w.state
	next.CurrentStep++
	w.publish(next)
}

// Previous moves to the preceding step. It does nothing on step 1 or while
// inactive.
func (w *Walkthrough) Previous() {
	if !w.state.IsActive || w.state.CurrentStep <= 1 {
		return
	}
	next := w.state
	next.CurrentStep--
	w.publish(next)
}

// Advance is the Next/Finish button: Next on any step but the last, Stop on
// the last one.
func (w *Walkthrough) Advance() {
	if w.IsLastStep() {
		w.Stop()
		return
	}
	w.Next()
}

// State returns the current state.
func (w *Walkthrough) State() State {
	return w.state
}

// CurrentStep returns the active step, or false while inactive.
func (w *Walkthrough) CurrentStep() (Step, bool) {
	if !w.state.IsActive {
		return Step{}, false
	}
	return w.catalog.ByID(w.state.CurrentStep)
}

// StepByIcon returns the step highlighting the named icon.
func (w *Walkthrough) StepByIcon(name string) (Step, bool) {
	return w.catalog.ByIcon(name)
}

// StepByID returns the step with the given id.
func (w *Walkthrough) StepByID(id int) (Step, bool) {
	return w.catalog.ByID(id)
}

// Steps returns a copy of the catalog, including the latest positions.
func (w *Walkthrough) Steps() []Step {
	return w.catalog.Steps()
}

// IsIconActive reports whether name is the icon highlighted by the current
// step.
func (w *Walkthrough) IsIconActive(name string) bool {
	step, ok := w.StepByIcon(name)
	return ok && w.state.IsActive && step.ID == w.state.CurrentStep
}

// CanGoPrevious reports whether Previous would move.
func (w *Walkthrough) CanGoPrevious() bool {
	return w.state.IsActive && w.state.CurrentStep > 1
}

// CanGoNext reports whether Next would move.
func (w *Walkthrough) CanGoNext() bool {
	return w.state.IsActive && w.state.CurrentStep < w.state.TotalSteps
}

// IsLastStep reports whether the tour is on its final step.
func (w *Walkthrough) IsLastStep() bool {
	return w.state.IsActive && w.state.CurrentStep == w.state.TotalSteps
}

// UpdatePositions records freshly measured arrow endpoints for step id.
// Unknown ids are ignored: a measurement can arrive after the view that
// produced it has gone away.
func (w *Walkthrough) UpdatePositions(id int, start, end Point) {
	if !w.catalog.setPositions(id, start, end) {
		debug.Log("walkthrough: ignoring positions for unknown step %d", id)
	}
}
