package ui

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{})
	t.Cleanup(m.Close)
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func TestNewModel_NonFiniteViewportFallsBack(t *testing.T) {
	m := NewModel(Options{Viewport: layout.Viewport{Width: math.NaN(), Height: math.Inf(1)}})
	t.Cleanup(m.Close)
	if m.s.vp != (layout.Viewport{Width: 390, Height: 844}) {
		t.Errorf("viewport = %+v, want the phone default", m.s.vp)
	}
}

func TestModel_StartAndNavigate(t *testing.T) {
	m := newTestModel(t)
	wt := m.Walkthrough()

	m = send(t, m, runes("w"))
	if st := wt.State(); !st.IsActive || st.CurrentStep != 1 {
		t.Fatalf("after w: %s", st)
	}
	if m.s.highlighter.active != "forfeit" || !m.s.highlighter.dimOthers {
		t.Errorf("highlighter = %+v", m.s.highlighter)
	}
	if !m.s.overlay.visible || !m.s.overlay.hasPath {
		t.Errorf("overlay not shown with arrow: %+v", m.s.overlay)
	}
	if m.s.overlay.text.Text == "" {
		t.Errorf("overlay should show icon text, got %+v", m.s.overlay.text)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("n"), tea.KeyMsg{Type: tea.KeySpace})
	if wt.State().CurrentStep != 4 {
		t.Errorf("expected step 4, got %d", wt.State().CurrentStep)
	}
	if m.s.highlighter.active != "location" {
		t.Errorf("highlighter active = %q", m.s.highlighter.active)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, runes("p"))
	if wt.State().CurrentStep != 2 {
		t.Errorf("expected step 2, got %d", wt.State().CurrentStep)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if wt.State().IsActive {
		t.Error("esc should stop the tour")
	}
	if m.s.overlay.visible || m.s.highlighter.dimOthers {
		t.Error("views should reset when the tour stops")
	}
}

func TestModel_FinishOnLastStepStops(t *testing.T) {
	m := newTestModel(t)
	wt := m.Walkthrough()

	m = send(t, m, runes("w"))
	for i := 0; i < 10; i++ {
		m = send(t, m, runes("n"))
	}
	if !wt.IsLastStep() {
		t.Fatalf("expected last step, got %s", wt.State())
	}
	if !strings.Contains(stripANSI(m.s.overlay.renderPanel(m.s, m.theme, 48)), "Finish") {
		t.Error("last step should offer Finish")
	}

	send(t, m, runes("n"))
	if wt.State().IsActive {
		t.Error("Finish should stop the tour")
	}
}

func TestModel_QInTourStopsInsteadOfQuitting(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("w"))

	updated, cmd := m.Update(runes("q"))
	m = updated.(Model)
	if m.Walkthrough().State().IsActive {
		t.Error("q should end the tour")
	}
	if cmd != nil {
		t.Error("q during a tour should not quit")
	}

	_, cmd = m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q on the main page should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_PreviousAtFirstStepIsNoop(t *testing.T) {
	m := newTestModel(t)
	emissions := 0
	unsubscribe := m.Walkthrough().Subscribe(func(walkthrough.State) { emissions++ })
	defer unsubscribe()

	m = send(t, m, runes("w"), runes("p"), tea.KeyMsg{Type: tea.KeyLeft})
	if emissions != 1 {
		t.Errorf("expected only the start emission, got %d", emissions)
	}
	if m.Walkthrough().State().CurrentStep != 1 {
		t.Errorf("step = %d", m.Walkthrough().State().CurrentStep)
	}
}

func TestModel_ViewDrawsOverlay(t *testing.T) {
	m := newTestModel(t)

	page := stripANSI(m.View())
	if !strings.Contains(page, "forfeit") {
		t.Error("page should list icons")
	}
	lines := strings.Split(page, "\n")
	if len(lines) != 30 {
		t.Errorf("view has %d lines, want 30", len(lines))
	}

	m = send(t, m, runes("w"))
	tour := stripANSI(m.View())
	if !strings.Contains(tour, "1/11") {
		t.Error("tour view should show the step badge")
	}
	if !strings.Contains(tour, "Exit the application anytime") {
		t.Error("tour view should show the step text")
	}
	if !strings.ContainsAny(tour, "▶◀▲▼") {
		t.Error("tour view should draw an arrow head")
	}
	for i, line := range strings.Split(tour, "\n") {
		if w := len([]rune(line)); w > 100 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}

func TestModel_ResizeRemeasures(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("w"))
	before := m.s.overlay.path

	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.s.grid.Cols != 60 || m.s.grid.Rows != 18 {
		t.Errorf("grid = %+v", m.s.grid)
	}
	if m.s.overlay.path != before {
		t.Error("pixel path should not depend on the terminal size")
	}
	if !m.s.overlay.hasPath {
		t.Error("arrow lost on resize")
	}
}

func TestModel_CopyPath(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error { copied = s; return nil }
	defer func() { clipboardWrite = orig }()

	m := newTestModel(t)
	m = send(t, m, runes("w"), runes("y"))

	step, _ := m.Walkthrough().CurrentStep()
	path, _ := walkthrough.CurvedPath(step.Arrow)
	if copied != path.D() {
		t.Errorf("copied %q, want %q", copied, path.D())
	}
	if m.statusIsError {
		t.Errorf("unexpected error status %q", m.statusMsg)
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, runes("y"))
	if !m.statusIsError || !strings.Contains(m.statusMsg, "no clipboard") {
		t.Errorf("status = %q (error %v)", m.statusMsg, m.statusIsError)
	}
}

func TestModel_IconSelection(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runes("j"), runes("j"))
	if m.selected != 1 {
		t.Fatalf("selected = %d", m.selected)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pageText.Text == "" || m.pageText.Error != "" {
		t.Errorf("pageText = %+v", m.pageText)
	}

	m = send(t, m, runes("k"), runes("k"))
	if m.selected != len(m.s.icons)-1 {
		t.Errorf("k should wrap to the last icon, got %d", m.selected)
	}
}

func TestModel_MouseSelectsIcon(t *testing.T) {
	m := newTestModel(t)

	icon := m.s.icons[4]
	col, row := m.s.grid.Cell(layout.IconRect(m.s.vp, icon).Center())
	click := tea.MouseMsg{X: col, Y: row + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m = send(t, m, click)
	if m.selected != 4 {
		t.Fatalf("selected = %d, want 4", m.selected)
	}
	if m.pageText.Text == "" {
		t.Errorf("click should show the icon text, got %+v", m.pageText)
	}

	m = send(t, m, runes("w"), tea.MouseMsg{X: 0, Y: headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.selected != 4 {
		t.Error("clicks during a tour should be ignored")
	}
}

func TestModel_LanguageCycle(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	english := m.pageText.Text

	m = send(t, m, runes("l"))
	if m.s.tr.Language() != "es" || m.s.store.Language() != "es" {
		t.Fatalf("language = %s / %s", m.s.tr.Language(), m.s.store.Language())
	}
	if m.pageText.Text == english {
		t.Error("visible icon text should be re-resolved in Spanish")
	}

	m = send(t, m, runes("w"))
	if !strings.Contains(stripANSI(m.s.overlay.renderPanel(m.s, m.theme, 48)), "Siguiente") {
		t.Error("nav labels should be translated")
	}
}

func TestModel_IconTextsReloaded(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, IconTextsReloadedMsg{Err: errors.New("bad json")})
	if !m.statusIsError {
		t.Error("reload error should be reported")
	}
	m = send(t, m, IconTextsReloadedMsg{})
	if m.statusIsError || m.statusMsg == "" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestModel_CloseUnsubscribes(t *testing.T) {
	m := NewModel(Options{})
	m.Close()
	m.Walkthrough().Start()
	if m.s.overlay.visible {
		t.Error("closed model should not react to the walkthrough")
	}
}
