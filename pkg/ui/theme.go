package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme is the set of styles used by the main page and the walkthrough
// overlay.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	Base   lipgloss.Style
	Header lipgloss.Style

	// Icons on the right-hand column.
	Icon         lipgloss.Style
	IconSelected lipgloss.Style
	IconActive   lipgloss.Style // highlighted by the current tour step
	IconDimmed   lipgloss.Style // every other icon while a tour runs

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	PanelText  lipgloss.Style
	ErrorText  lipgloss.Style
	Button     lipgloss.Style
	ButtonOff  lipgloss.Style
	Backdrop   lipgloss.Style
	StatusText lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Icon = r.NewStyle().Foreground(t.Subtext)
	t.IconSelected = r.NewStyle().Foreground(t.Primary).Bold(true).Underline(true)
	t.IconActive = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#282A36", Dark: "#282A36"}).
		Background(ThemeBg("#FFD166")).
		Bold(true)
	t.IconDimmed = r.NewStyle().Foreground(t.Muted).Faint(true)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
	t.PanelTitle = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.PanelText = r.NewStyle().Foreground(t.Subtext)
	t.ErrorText = r.NewStyle().Foreground(t.Danger)
	t.Button = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Background(t.Primary).
		Padding(0, 1)
	t.ButtonOff = r.NewStyle().
		Foreground(t.Muted).
		Background(t.Highlight).
		Padding(0, 1)
	t.Backdrop = r.NewStyle().Faint(true)
	t.StatusText = r.NewStyle().Foreground(t.Subtext).Italic(true)

	return t
}

// ArrowStyle returns the style for an arrow stroked in hex.
func (t Theme) ArrowStyle(hex string) lipgloss.Style {
	return t.Renderer.NewStyle().Foreground(ThemeFg(hex)).Bold(true)
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
