// Package ui is the bubbletea front-end: the main page with its icon column
// and welcome note, and the walkthrough overlay that points at one icon per
// step.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// Rows reserved above and below the page content.
const (
	headerRows = 1
	footerRows = 1
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// IconTextsReloadedMsg is sent when the icon text asset was reloaded.
type IconTextsReloadedMsg struct {
	Err error
}

// Options configures NewModel. Zero values fall back to defaults.
type Options struct {
	Walkthrough *walkthrough.Walkthrough
	Store       *icontext.Store
	Translator  *icontext.Translator
	Viewport    layout.Viewport
	Icons       []layout.IconPlacement
	Theme       *Theme
}

// Model is the main page.
type Model struct {
	s     *session
	theme Theme
	keys  KeyMap
	help  help.Model

	width, height int

	selected int
	pageText icontext.State // text for the icon picked on the main page
	welcome  string

	statusMsg     string
	statusIsError bool
}

// NewModel builds the main page and subscribes its views to the walkthrough.
func NewModel(opts Options) Model {
	if opts.Walkthrough == nil {
		opts.Walkthrough = walkthrough.NewDefault()
	}
	if opts.Store == nil {
		opts.Store = icontext.NewStore("")
		if err := opts.Store.Load(); err != nil {
			debug.Warn(err, "loading embedded icon texts")
		}
	}
	if opts.Translator == nil {
		opts.Translator = icontext.NewTranslator()
	}
	if opts.Viewport.Validate() != nil {
		opts.Viewport = layout.Viewport{Width: 390, Height: 844}
	}
	if opts.Icons == nil {
		opts.Icons = layout.DefaultIcons()
	}
	theme := TestTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	m := Model{
		s:        newSession(opts.Walkthrough, opts.Store, opts.Translator, opts.Viewport, opts.Icons),
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    80,
		height:   24,
		selected: -1,
	}
	m.welcome = renderWelcome(m.s.tr, m.welcomeWidth())
	return m
}

// Close unsubscribes the model's views from the walkthrough.
func (m Model) Close() {
	m.s.close()
}

// Walkthrough returns the walkthrough driven by the model.
func (m Model) Walkthrough() *walkthrough.Walkthrough {
	return m.s.wt
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("wt")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.s.resize(m.width, m.contentRows())
		m.welcome = renderWelcome(m.s.tr, m.welcomeWidth())
		return m, nil

	case IconTextsReloadedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("Icon texts: %v", msg.Err))
			return m, nil
		}
		m.setStatus("Icon texts reloaded")
		m.refreshTexts()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.s.wt.Stop()
			return m, tea.Quit
		}
		if m.s.wt.State().IsActive {
			return m.updateTour(msg)
		}
		return m.updatePage(msg)
	}
	return m, nil
}

func (m Model) updateTour(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.s.wt.Advance()
	case key.Matches(msg, m.keys.Previous):
		m.s.wt.Previous()
	case key.Matches(msg, m.keys.Stop):
		m.s.wt.Stop()
	case key.Matches(msg, m.keys.CopyPath):
		m.copyPath()
	}
	return m, nil
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Start):
		m.statusMsg = ""
		m.s.wt.Start()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down) && len(m.s.icons) > 0:
		m.selected = (m.selected + 1) % len(m.s.icons)
	case key.Matches(msg, m.keys.Up) && len(m.s.icons) > 0:
		if m.selected <= 0 {
			m.selected = len(m.s.icons) - 1
		} else {
			m.selected--
		}
	case key.Matches(msg, m.keys.Select):
		if m.selected >= 0 {
			m.pageText = m.s.store.Show(m.s.icons[m.selected].Name)
		}
	case key.Matches(msg, m.keys.Language):
		m.cycleLanguage()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// updateMouse selects the icon under a left click on the main page.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.s.wt.State().IsActive {
		return m, nil
	}
	p := m.s.grid.Point(msg.X, msg.Y-headerRows)
	if i := layout.IconAt(m.s.vp, m.s.icons, p); i >= 0 {
		m.selected = i
		m.pageText = m.s.store.Show(m.s.icons[i].Name)
	}
	return m, nil
}

func (m *Model) cycleLanguage() {
	next := m.s.tr.Language().Next()
	if err := m.s.tr.SetLanguage(string(next)); err != nil {
		m.setError(err.Error())
		return
	}
	m.s.store.SetLanguage(next)
	m.welcome = renderWelcome(m.s.tr, m.welcomeWidth())
	m.refreshTexts()
	m.setStatus("Language: " + string(next))
}

// refreshTexts re-resolves whatever icon text is on screen.
func (m *Model) refreshTexts() {
	if m.s.overlay.visible {
		m.s.overlay.text = m.s.store.Show(m.s.overlay.step.IconName)
		return
	}
	if m.selected >= 0 && (m.pageText.Text != "" || m.pageText.Error != "") {
		m.pageText = m.s.store.Show(m.s.icons[m.selected].Name)
	}
}

func (m *Model) copyPath() {
	if !m.s.overlay.hasPath {
		m.setError("No arrow to copy yet")
		return
	}
	d := m.s.overlay.path.D()
	if err := clipboardWrite(d); err != nil {
		m.setError(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	m.setStatus("Copied arrow path to clipboard")
}

func (m *Model) setStatus(s string) {
	m.statusMsg, m.statusIsError = s, false
}

func (m *Model) setError(s string) {
	m.statusMsg, m.statusIsError = s, true
}

func (m Model) contentRows() int {
	return max(m.height-headerRows-footerRows, 1)
}

func (m Model) welcomeWidth() int {
	// The welcome note shares the row with the icon column.
	return max(m.width*3/5, 20)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := m.contentRows()
	content := blankScreen(m.width, rows)

	if !m.s.overlay.visible {
		content = overlayAt(content, m.renderPageText(), SpaceSM, 1, m.width, rows)
	}
	content = m.renderIcons(content, rows)
	content = m.s.overlay.render(content, m.s, m.theme, m.width, rows)
	if m.help.ShowAll && !m.s.overlay.visible {
		full := m.theme.Panel.Render(m.help.FullHelpView(pageKeys(m.keys).FullHelp()))
		content = overlayAt(content, full, SpaceSM, max(rows-lipgloss.Height(full), 0), m.width, rows)
	}

	return strings.Join([]string{m.renderHeader(), content, m.renderFooter()}, "\n")
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render("wt")
	lang := m.theme.StatusText.Render(" " + string(m.s.tr.Language()))
	line := title + lang
	if st := m.s.wt.State(); st.IsActive {
		line += "  " + RenderStepBadge(st.CurrentStep, st.TotalSteps)
	}
	return padRight(line, m.width)
}

func (m Model) renderPageText() string {
	var b strings.Builder
	b.WriteString(m.welcome)
	if m.pageText.Error == "" && m.pageText.Text == "" {
		return b.String()
	}
	b.WriteString("\n" + RenderDivider(m.welcomeWidth()) + "\n")
	if m.pageText.Error != "" {
		b.WriteString(m.theme.ErrorText.Render(m.pageText.Error))
	} else {
		b.WriteString(m.theme.Panel.Width(m.welcomeWidth()-2).Render(m.pageText.Text))
	}
	return b.String()
}

func (m Model) renderIcons(content string, rows int) string {
	for i, icon := range m.s.icons {
		col, row, w, _ := m.s.grid.CellRect(layout.IconRect(m.s.vp, icon))
		label := runewidth.Truncate(icon.Name, max(w, 4), "…")
		style := m.s.highlighter.style(m.theme, icon.Name, i == m.selected)
		content = overlayAt(content, style.Render(label), col, row, m.width, rows)
	}
	return content
}

func (m Model) renderFooter() string {
	var km help.KeyMap = pageKeys(m.keys)
	if m.s.wt.State().IsActive {
		km = tourKeys(m.keys)
	}
	line := m.help.ShortHelpView(km.ShortHelp())
	if m.statusMsg != "" {
		style := m.theme.StatusText
		if m.statusIsError {
			style = m.theme.ErrorText
		}
		line = style.Render(m.statusMsg) + "  " + line
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}
