package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/walkthrough/pkg/icontext"
)

// welcomeMarkdown is the welcome note shown when no tour is running.
func welcomeMarkdown(tr *icontext.Translator) string {
	var b strings.Builder
	b.WriteString("# " + tr.T("welcome") + "\n\n")
	b.WriteString(tr.T("learnNavigation") + "\n\n")
	for _, key := range []string{"customizeProfile", "setLocation", "connectOthers", "shareVideos", "getHelp", "exploreMore"} {
		b.WriteString("- " + tr.T(key) + "\n")
	}
	b.WriteString("\n**w** · " + tr.T("startTour") + "\n")
	return b.String()
}

// renderWelcome renders the welcome note with glamour, word-wrapped to
// width. The raw markdown is returned if glamour fails.
func renderWelcome(tr *icontext.Translator, width int) string {
	md := welcomeMarkdown(tr)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, " \n")
}
