package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/metrics"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// session is shared by every copy of Model. The walkthrough subscribers
// write into it, so views see a transition as soon as the command that
// caused it returns.
type session struct {
	wt    *walkthrough.Walkthrough
	store *icontext.Store
	tr    *icontext.Translator
	icons []layout.IconPlacement
	vp    layout.Viewport
	grid  layout.Grid

	highlighter iconHighlighter
	overlay     tourOverlay

	unsubscribe []func()
}

func newSession(wt *walkthrough.Walkthrough, store *icontext.Store, tr *icontext.Translator,
	vp layout.Viewport, icons []layout.IconPlacement) *session {
	s := &session{
		wt:    wt,
		store: store,
		tr:    tr,
		icons: icons,
		vp:    vp,
		grid:  layout.NewGrid(vp, 80, 22),
	}
	s.unsubscribe = append(s.unsubscribe,
		wt.Subscribe(s.highlighter.onState(wt)),
		wt.Subscribe(s.overlay.onState(s)),
	)
	layout.Feed(wt, vp, icons)
	return s
}

func (s *session) close() {
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.unsubscribe = nil
}

// resize refits the grid and re-runs the measurement feed.
func (s *session) resize(cols, rows int) {
	s.grid = layout.NewGrid(s.vp, cols, rows)
	layout.Feed(s.wt, s.vp, s.icons)
	s.overlay.refreshPath(s.wt)
}

// iconHighlighter tracks which icon the tour points at.
type iconHighlighter struct {
	active    string
	dimOthers bool
}

func (h *iconHighlighter) onState(wt *walkthrough.Walkthrough) func(walkthrough.State) {
	return func(st walkthrough.State) {
		if !st.IsActive {
			h.active, h.dimOthers = "", false
			return
		}
		step, _ := wt.CurrentStep()
		h.active, h.dimOthers = step.IconName, true
	}
}

// style picks the icon's style for the current highlight state.
func (h iconHighlighter) style(t Theme, name string, selected bool) lipgloss.Style {
	switch {
	case h.dimOthers && name == h.active:
		return t.IconActive
	case h.dimOthers:
		return t.IconDimmed
	case selected:
		return t.IconSelected
	default:
		return t.Icon
	}
}

// tourOverlay is the panel and arrow drawn while a tour runs.
type tourOverlay struct {
	visible bool
	state   walkthrough.State
	step    walkthrough.Step
	path    walkthrough.Path
	hasPath bool
	text    icontext.State
}

func (o *tourOverlay) onState(s *session) func(walkthrough.State) {
	return func(st walkthrough.State) {
		o.state = st
		if !st.IsActive {
			o.visible, o.hasPath = false, false
			o.step = walkthrough.Step{}
			s.store.Clear()
			return
		}
		layout.Feed(s.wt, s.vp, s.icons)
		o.visible = true
		o.refreshPath(s.wt)
		o.text = s.store.Show(o.step.IconName)
		debug.Log("overlay: step %d icon %q path=%v", st.CurrentStep, o.step.IconName, o.hasPath)
	}
}

func (o *tourOverlay) refreshPath(wt *walkthrough.Walkthrough) {
	step, ok := wt.CurrentStep()
	if !ok {
		o.hasPath = false
		return
	}
	o.step = step
	o.path, o.hasPath = walkthrough.CurvedPath(step.Arrow)
}

// render draws the panel and arrow onto the content area.
func (o tourOverlay) render(content string, s *session, t Theme, width, height int) string {
	if !o.visible {
		return content
	}
	defer metrics.Timer(metrics.OverlayRender)()

	panelRect := layout.TextPanel(s.vp, o.step.Arrow.Direction)
	col, _, w, _ := s.grid.CellRect(panelRect)
	_, midRow := s.grid.Cell(walkthrough.Point{X: panelRect.Left(), Y: panelRect.MidY()})
	w = max(w, 24)

	box := o.renderPanel(s, t, w)
	top := max(midRow-lipgloss.Height(box)/2, 0)
	content = overlayAt(content, box, col, top, width, height)

	if o.hasPath {
		cells := rasterizeCurve(o.path, s.grid)
		content = cells.render(content, t.ArrowStyle(walkthrough.StrokeColor(o.step.IconName)), width, height)
	}
	return content
}

func (o tourOverlay) renderPanel(s *session, t Theme, width int) string {
	inner := max(width-4, 10) // border and padding

	var b strings.Builder
	b.WriteString(RenderStepBadge(o.state.CurrentStep, o.state.TotalSteps))
	b.WriteString(" ")
	b.WriteString(t.PanelTitle.Render(o.step.Text))
	b.WriteString("\n")
	b.WriteString(RenderProgressBar(o.state.CurrentStep, o.state.TotalSteps, inner, t))
	b.WriteString("\n")

	if o.text.Error != "" {
		b.WriteString(t.ErrorText.Width(inner).Render(o.text.Error))
	} else {
		b.WriteString(t.PanelText.Width(inner).Render(o.text.Text))
	}
	b.WriteString("\n\n")

	prev := t.ButtonOff
	if s.wt.CanGoPrevious() {
		prev = t.Button
	}
	nextLabel := s.tr.T("next")
	if s.wt.IsLastStep() {
		nextLabel = s.tr.T("finish")
	}
	prevBtn := prev.Render(s.tr.T("previous"))
	nextBtn := t.Button.Render(nextLabel)
	gap := max(inner-lipgloss.Width(prevBtn)-lipgloss.Width(nextBtn), 1)
	b.WriteString(prevBtn + strings.Repeat(" ", gap) + nextBtn)

	return t.Panel.Width(width - 2).Render(b.String())
}
