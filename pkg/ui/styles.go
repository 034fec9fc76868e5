package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants (in characters)
const (
	SpaceSM = 2
)

var (
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

// RenderProgressBar renders step/total as a horizontal bar of width cells.
func RenderProgressBar(step, total, width int, t Theme) string {
	if width <= 0 || total <= 0 {
		return ""
	}
	value := float64(step) / float64(total)
	value = max(0, min(value, 1))

	filled := int(value * float64(width))

	var barColor lipgloss.AdaptiveColor
	switch {
	case value >= 1:
		barColor = ColorSuccess
	case value >= 0.5:
		barColor = ColorInfo
	default:
		barColor = t.Primary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// RenderStepBadge renders "3/11", green on the last step.
func RenderStepBadge(step, total int) string {
	if total == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("?/?")
	}
	color := ColorPrimary
	if step >= total {
		color = ColorSuccess
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(fmt.Sprintf("%d/%d", step, total))
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
