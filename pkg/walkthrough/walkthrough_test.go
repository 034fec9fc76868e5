package walkthrough

import (
	"errors"
	"testing"
)

func TestNewWalkthroughInitialState(t *testing.T) {
	w := NewDefault()
	got := w.State()
	want := State{CurrentStep: 0, IsActive: false, TotalSteps: 11}
	if got != want {
		t.Fatalf("Expected initial state %+v, got %+v", want, got)
	}
	if _, ok := w.CurrentStep(); ok {
		t.Error("Expected no current step while inactive")
	}
}

func TestStartStop(t *testing.T) {
	w := NewDefault()

	w.Start()
	if s := w.State(); s.CurrentStep != 1 || !s.IsActive {
		t.Errorf("Expected step 1 active after Start, got %+v", s)
	}

	w.Next()
	w.Next()
	w.Start()
	if s := w.State(); s.CurrentStep != 1 || !s.IsActive {
		t.Errorf("Expected Start to restart at step 1, got %+v", s)
	}

	w.Stop()
	if s := w.State(); s.CurrentStep != 0 || s.IsActive {
		t.Errorf("Expected inactive after Stop, got %+v", s)
	}

	// Stop from inactive is still valid
	w.Stop()
	if s := w.State(); s.CurrentStep != 0 || s.IsActive {
		t.Errorf("Expected inactive after second Stop, got %+v", s)
	}
}

func TestNextPreviousBoundaries(t *testing.T) {
	w := NewDefault()
	w.Start()

	w.Previous()
	if w.State().CurrentStep != 1 {
		t.Errorf("Expected Previous on step 1 to be a no-op, got %d", w.State().CurrentStep)
	}
	if !w.State().IsActive {
		t.Error("Previous on step 1 must not deactivate")
	}

	for i := 0; i < 20; i++ {
		w.Next()
	}
	if w.State().CurrentStep != 11 {
		t.Errorf("Expected to stop at last step 11, got %d", w.State().CurrentStep)
	}
	if !w.State().IsActive {
		t.Error("Reaching the last step must not deactivate")
	}

	w.Previous()
	if w.State().CurrentStep != 10 {
		t.Errorf("Expected step 10 after Previous, got %d", w.State().CurrentStep)
	}
}

func TestNextPreviousWhileInactive(t *testing.T) {
	w := NewDefault()
	emissions := 0
	w.Subscribe(func(State) { emissions++ })

	w.Next()
	w.Previous()

	if s := w.State(); s.CurrentStep != 0 || s.IsActive {
		t.Errorf("Expected inactive state to be unchanged, got %+v", s)
	}
	if emissions != 0 {
		t.Errorf("Expected no emissions for no-op transitions, got %d", emissions)
	}
}

func TestSubscriptionScenario(t *testing.T) {
	w := NewDefault()
	var got []State
	w.Subscribe(func(s State) { got = append(got, s) })

	w.Start()
	w.Next()
	w.Next()
	w.Next()
	w.Stop()

	wantSteps := []int{1, 2, 3, 4, 0}
	wantActive := []bool{true, true, true, true, false}
	if len(got) != len(wantSteps) {
		t.Fatalf("Expected %d emissions, got %d: %+v", len(wantSteps), len(got), got)
	}
	for i := range got {
		if got[i].CurrentStep != wantSteps[i] || got[i].IsActive != wantActive[i] {
			t.Errorf("emission %d = %+v, want step %d active %v", i, got[i], wantSteps[i], wantActive[i])
		}
		if got[i].TotalSteps != 11 {
			t.Errorf("emission %d TotalSteps = %d, want 11", i, got[i].TotalSteps)
		}
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	w := NewDefault()
	var order []string
	w.Subscribe(func(State) { order = append(order, "icons") })
	w.Subscribe(func(State) { order = append(order, "overlay") })

	w.Start()

	if len(order) != 2 || order[0] != "icons" || order[1] != "overlay" {
		t.Errorf("Expected [icons overlay], got %v", order)
	}
}

func TestUnsubscribe(t *testing.T) {
	w := NewDefault()
	a, b := 0, 0
	unsubA := w.Subscribe(func(State) { a++ })
	w.Subscribe(func(State) { b++ })

	w.Start()
	unsubA()
	unsubA() // idempotent
	w.Next()

	if a != 1 {
		t.Errorf("Expected unsubscribed listener to see 1 emission, got %d", a)
	}
	if b != 2 {
		t.Errorf("Expected remaining listener to see 2 emissions, got %d", b)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	w := NewDefault()
	calls := 0
	var unsub func()
	unsub = w.Subscribe(func(State) {
		calls++
		unsub()
	})
	other := 0
	w.Subscribe(func(State) { other++ })

	w.Start()
	w.Next()

	if calls != 1 {
		t.Errorf("Expected self-unsubscribing listener to run once, got %d", calls)
	}
	if other != 2 {
		t.Errorf("Expected other listener to see both emissions, got %d", other)
	}
}

func TestAdvanceFinishesOnLastStep(t *testing.T) {
	w := NewDefault()
	w.Start()
	for i := 1; i < 11; i++ {
		w.Advance()
	}
	if !w.IsLastStep() {
		t.Fatalf("Expected last step, got %+v", w.State())
	}
	if w.CanGoNext() {
		t.Error("CanGoNext should be false on the last step")
	}

	w.Advance()
	if w.State().IsActive {
		t.Error("Expected Advance on the last step to stop the tour")
	}
}

func TestNavigationFlags(t *testing.T) {
	w := NewDefault()
	if w.CanGoNext() || w.CanGoPrevious() || w.IsLastStep() {
		t.Error("Expected all navigation flags false while inactive")
	}
	w.Start()
	if !w.CanGoNext() || w.CanGoPrevious() {
		t.Errorf("Step 1: CanGoNext=%v CanGoPrevious=%v", w.CanGoNext(), w.CanGoPrevious())
	}
	w.Next()
	if !w.CanGoPrevious() {
		t.Error("Step 2: expected CanGoPrevious")
	}
}

func TestCurrentStepDetails(t *testing.T) {
	w := NewDefault()
	w.Start()
	w.Next()

	step, ok := w.CurrentStep()
	if !ok {
		t.Fatal("Expected a current step")
	}
	if step.ID != 2 || step.IconName != "help" {
		t.Errorf("Expected step 2 (help), got %d (%s)", step.ID, step.IconName)
	}
}

func TestStepByIcon(t *testing.T) {
	w := NewDefault()

	step, ok := w.StepByIcon("chat")
	if !ok || step.ID != 5 {
		t.Errorf("StepByIcon(chat) = %d, %v; want 5, true", step.ID, ok)
	}

	step, ok = w.StepByIcon("selfie & video")
	if !ok || step.ID != 9 {
		t.Errorf("StepByIcon(selfie & video) = %d, %v; want 9, true", step.ID, ok)
	}

	if _, ok := w.StepByIcon("nonexistent"); ok {
		t.Error("Expected StepByIcon(nonexistent) to be absent")
	}
}

func TestStepByIconMatchesLinearScan(t *testing.T) {
	w := NewDefault()
	for _, s := range DefaultSteps() {
		var scanned Step
		for _, c := range w.Steps() {
			if c.IconName == s.IconName {
				scanned = c
				break
			}
		}
		got, _ := w.StepByIcon(s.IconName)
		if got != scanned {
			t.Errorf("StepByIcon(%q) = %+v, linear scan = %+v", s.IconName, got, scanned)
		}
	}
}

func TestIsIconActive(t *testing.T) {
	w := NewDefault()
	if w.IsIconActive("forfeit") {
		t.Error("No icon should be active while inactive")
	}
	w.Start()
	if !w.IsIconActive("forfeit") {
		t.Error("Expected forfeit active on step 1")
	}
	if w.IsIconActive("help") {
		t.Error("Expected help inactive on step 1")
	}
}

func TestUpdatePositions(t *testing.T) {
	w := NewDefault()
	start := Point{X: 266, Y: 422}
	end := Point{X: 340, Y: 44}

	w.UpdatePositions(3, start, end)
	step, _ := w.StepByID(3)
	if step.Arrow.Start != start || step.Arrow.End != end {
		t.Errorf("Expected positions %v→%v, got %v→%v", start, end, step.Arrow.Start, step.Arrow.End)
	}
	if step.Arrow.Direction != Right || step.Arrow.Curve != Gentle {
		t.Error("UpdatePositions must not touch authored arrow fields")
	}

	// last write wins
	later := Point{X: 300, Y: 400}
	w.UpdatePositions(3, later, end)
	step, _ = w.StepByID(3)
	if step.Arrow.Start != later {
		t.Errorf("Expected last write to win, got %v", step.Arrow.Start)
	}
}

func TestUpdatePositionsUnknownIDIgnored(t *testing.T) {
	w := NewDefault()
	before := w.Steps()

	w.UpdatePositions(0, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
	w.UpdatePositions(12, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
	w.UpdatePositions(-4, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})

	after := w.Steps()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("step %d changed after out-of-range update", before[i].ID)
		}
	}
}

func TestStepsReturnsCopy(t *testing.T) {
	w := NewDefault()
	steps := w.Steps()
	steps[0].IconName = "mutated"
	if s, _ := w.StepByID(1); s.IconName != "forfeit" {
		t.Error("Steps must return a copy of the catalog")
	}
}

func TestNewCatalogValidation(t *testing.T) {
	arrow := ArrowConfig{Direction: Right, Curve: Gentle}
	tests := []struct {
		name  string
		steps []Step
	}{
		{"empty", nil},
		{"sparse ids", []Step{{ID: 1, IconName: "a", Arrow: arrow}, {ID: 3, IconName: "b", Arrow: arrow}}},
		{"zero based", []Step{{ID: 0, IconName: "a", Arrow: arrow}}},
		{"duplicate icon", []Step{{ID: 1, IconName: "a", Arrow: arrow}, {ID: 2, IconName: "a", Arrow: arrow}}},
		{"missing icon", []Step{{ID: 1, Arrow: arrow}}},
		{"bad direction", []Step{{ID: 1, IconName: "a", Arrow: ArrowConfig{Direction: "up", Curve: Gentle}}}},
		{"bad curve", []Step{{ID: 1, IconName: "a", Arrow: ArrowConfig{Direction: Left, Curve: "wild"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.steps)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("Expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestCustomCatalogSize(t *testing.T) {
	arrow := ArrowConfig{Direction: Left, Curve: Steep}
	cat, err := NewCatalog([]Step{
		{ID: 1, IconName: "a", Arrow: arrow},
		{ID: 2, IconName: "b", Arrow: arrow},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	w := New(cat)
	if w.State().TotalSteps != 2 {
		t.Errorf("Expected TotalSteps 2, got %d", w.State().TotalSteps)
	}
	w.Start()
	w.Next()
	w.Next()
	if w.State().CurrentStep != 2 {
		t.Errorf("Expected to clamp at 2, got %d", w.State().CurrentStep)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	steps := DefaultSteps()
	if len(steps) != 11 {
		t.Fatalf("Expected 11 steps, got %d", len(steps))
	}
	for i, s := range steps {
		if s.Arrow.Measured() {
			t.Errorf("step %d should start unmeasured", s.ID)
		}
		wantDir := Right
		if i >= 5 {
			wantDir = Left
		}
		if s.Arrow.Direction != wantDir {
			t.Errorf("step %d direction = %s, want %s", s.ID, s.Arrow.Direction, wantDir)
		}
	}
}
