package export

import (
	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// IconFrame is one icon as drawn in a frame.
type IconFrame struct {
	Name   string      `json:"name"`
	Rect   layout.Rect `json:"rect"`
	Active bool        `json:"active"`
	Dimmed bool        `json:"dimmed"`
}

// Frame is everything needed to draw the page at one walkthrough step.
type Frame struct {
	Viewport layout.Viewport   `json:"viewport"`
	State    walkthrough.State `json:"state"`
	Step     walkthrough.Step  `json:"step"`
	Panel    layout.Rect       `json:"panel"`
	Icons    []IconFrame       `json:"icons"`

	// Path is only meaningful when HasPath is set; an unmeasured step draws
	// no arrow.
	HasPath  bool               `json:"has_path"`
	Path     walkthrough.Path   `json:"path"`
	PathData string             `json:"path_data,omitempty"`
	Color    string             `json:"color"`
	Marker   walkthrough.Marker `json:"marker"`

	Text      string `json:"text"`
	TextError string `json:"text_error,omitempty"`

	PreviousLabel string `json:"previous_label"`
	NextLabel     string `json:"next_label"`
	CanPrevious   bool   `json:"can_previous"`
	CanNext       bool   `json:"can_next"`
}

// TextSource supplies the icon text shown in the panel.
type TextSource interface {
	Show(icon string) icontext.State
}

// Labels are the navigation button captions.
type Labels struct {
	Previous string
	Next     string
	Finish   string
}

// DefaultLabels returns English captions.
func DefaultLabels() Labels {
	return Labels{Previous: "Previous", Next: "Next", Finish: "Finish"}
}

// LabelsFrom resolves captions through tr.
func LabelsFrom(tr *icontext.Translator) Labels {
	return Labels{Previous: tr.T("previous"), Next: tr.T("next"), Finish: tr.T("finish")}
}

// FrameOptions configures BuildFrames.
type FrameOptions struct {
	Viewport layout.Viewport
	Icons    []layout.IconPlacement
	Texts    TextSource // nil uses the step text
	Labels   Labels
	// SkipMeasure leaves arrow positions as they are, which renders
	// unmeasured steps without an arrow.
	SkipMeasure bool
}

// BuildFrames runs a full tour on w and captures one frame per step. The tour
// is stopped again before returning.
func BuildFrames(w *walkthrough.Walkthrough, opts FrameOptions) []Frame {
	if opts.Labels == (Labels{}) {
		opts.Labels = DefaultLabels()
	}
	if !opts.SkipMeasure {
		layout.Feed(w, opts.Viewport, opts.Icons)
	}

	var frames []Frame
	unsubscribe := w.Subscribe(func(st walkthrough.State) {
		if !st.IsActive {
			return
		}
		frames = append(frames, buildFrame(w, st, opts))
	})
	defer unsubscribe()

	w.Start()
	for w.CanGoNext() {
		w.Next()
	}
	w.Stop()

	debug.Log("built %d frames", len(frames))
	return frames
}

func buildFrame(w *walkthrough.Walkthrough, st walkthrough.State, opts FrameOptions) Frame {
	step, _ := w.CurrentStep()

	f := Frame{
		Viewport:      opts.Viewport,
		State:         st,
		Step:          step,
		Panel:         layout.TextPanel(opts.Viewport, step.Arrow.Direction),
		Color:         walkthrough.StrokeColor(step.IconName),
		Marker:        walkthrough.MarkerFor(step.Arrow.Direction),
		Text:          step.Text,
		PreviousLabel: opts.Labels.Previous,
		NextLabel:     opts.Labels.Next,
		CanPrevious:   w.CanGoPrevious(),
		CanNext:       true,
	}
	if w.IsLastStep() {
		f.NextLabel = opts.Labels.Finish
	}

	if path, ok := walkthrough.CurvedPath(step.Arrow); ok {
		f.HasPath = true
		f.Path = path
		f.PathData = path.D()
	}

	if opts.Texts != nil {
		ts := opts.Texts.Show(step.IconName)
		if ts.Error != "" {
			f.TextError = ts.Error
		} else {
			f.Text = ts.Text
		}
	}

	for _, icon := range opts.Icons {
		active := w.IsIconActive(icon.Name)
		f.Icons = append(f.Icons, IconFrame{
			Name:   icon.Name,
			Rect:   layout.IconRect(opts.Viewport, icon),
			Active: active,
			Dimmed: !active,
		})
	}
	return f
}
