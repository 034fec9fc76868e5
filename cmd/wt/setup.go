package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/walkthrough/pkg/config"
	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
)

// setupAnswers holds the form fields as the user edits them.
type setupAnswers struct {
	Language     string
	IconTexts    string
	Width        string
	Height       string
	ExportDir    string
	ExportFormat string
	History      bool
}

func answersFrom(cfg config.Config) setupAnswers {
	return setupAnswers{
		Language:     cfg.Language,
		IconTexts:    cfg.IconTexts,
		Width:        strconv.FormatFloat(cfg.Viewport.Width, 'g', -1, 64),
		Height:       strconv.FormatFloat(cfg.Viewport.Height, 'g', -1, 64),
		ExportDir:    cfg.Export.Dir,
		ExportFormat: cfg.Export.Format,
		History:      cfg.HistoryEnabled(),
	}
}

// apply copies the answers onto cfg and validates the result.
func (a setupAnswers) apply(cfg config.Config) (config.Config, error) {
	width, err := parseDimension(a.Width)
	if err != nil {
		return cfg, fmt.Errorf("viewport width: %w", err)
	}
	height, err := parseDimension(a.Height)
	if err != nil {
		return cfg, fmt.Errorf("viewport height: %w", err)
	}

	cfg.Language = a.Language
	cfg.IconTexts = strings.TrimSpace(a.IconTexts)
	cfg.Viewport = config.ViewportConfig{Width: width, Height: height}
	cfg.Export.Dir = strings.TrimSpace(a.ExportDir)
	cfg.Export.Format = a.ExportFormat
	enabled := a.History
	cfg.History.Enabled = &enabled

	return cfg, cfg.Validate()
}

func parseDimension(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if err := layout.CheckDimension(v); err != nil {
		return 0, err
	}
	return v, nil
}

func validateDimension(s string) error {
	_, err := parseDimension(s)
	return err
}

// validateIconTexts accepts an empty path (embedded texts) or a readable
// icon text file.
func validateIconTexts(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	_, err := icontext.ReadTexts(path)
	return err
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func setupForm(a *setupAnswers) *huh.Form {
	langs := make([]huh.Option[string], 0, len(icontext.Languages()))
	for _, l := range icontext.Languages() {
		langs = append(langs, huh.NewOption(languageName(l), string(l)))
	}

	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display language").
				Options(langs...).
				Value(&a.Language),
			huh.NewInput().
				Title("Icon texts file").
				Description("Leave empty to use the built-in texts").
				Value(&a.IconTexts).
				Validate(validateIconTexts),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Viewport width (px)").
				Value(&a.Width).
				Validate(validateDimension),
			huh.NewInput().
				Title("Viewport height (px)").
				Value(&a.Height).
				Validate(validateDimension),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(
					huh.NewOption("SVG (one file per step)", "svg"),
					huh.NewOption("PNG (one file per step)", "png"),
					huh.NewOption("JSON (frames.json)", "json"),
				).
				Value(&a.ExportFormat),
			huh.NewInput().
				Title("Export directory").
				Value(&a.ExportDir),
			huh.NewConfirm().
				Title("Record walkthrough history?").
				Description("Runs are listed by `wt history`").
				Value(&a.History),
		),
	)
}

func languageName(l icontext.Language) string {
	switch l {
	case icontext.Spanish:
		return "Español"
	case icontext.French:
		return "Français"
	default:
		return "English"
	}
}

func setupCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively write the wt config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if path == "" {
				return fmt.Errorf("cannot determine config directory")
			}

			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}
			answers := answersFrom(cfg)
			if err := setupForm(&answers).Run(); err != nil {
				return err
			}
			cfg, err = answers.apply(cfg)
			if err != nil {
				return err
			}
			if err := config.SaveTo(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
}
