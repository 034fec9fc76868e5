package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/walkthrough/internal/store"
	"github.com/vanderheijden86/walkthrough/pkg/config"
	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/icontext"
	"github.com/vanderheijden86/walkthrough/pkg/layout"
	"github.com/vanderheijden86/walkthrough/pkg/ui"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

func runTUI(ctx context.Context, cfg config.Config, recordHistory bool) error {
	// Log lines on stderr would tear the alt screen.
	closeLog := redirectLog()
	defer closeLog()
	debug.Section("tui")

	lang, err := icontext.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	texts := icontext.NewStore(cfg.IconTexts)
	texts.SetLanguage(lang)
	if err := texts.Load(); err != nil {
		// The page still runs; icon panels show the load error instead.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	tr := icontext.NewTranslator()
	if err := tr.SetLanguage(string(lang)); err != nil {
		return err
	}

	wt := walkthrough.NewDefault()

	if recordHistory && cfg.HistoryEnabled() {
		if path := cfg.HistoryPath(); path != "" {
			h, err := store.Open(path)
			if err != nil {
				debug.Warn(err, "opening tour history")
			} else {
				defer h.Close()
				detach := h.Attach(wt)
				defer detach()
			}
		}
	}

	m := ui.NewModel(ui.Options{
		Walkthrough: wt,
		Store:       texts,
		Translator:  tr,
		Viewport:    layout.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height},
	})
	defer m.Close()

	return runTUIProgram(ctx, m, texts)
}

// redirectLog sends debug output to <state dir>/wt.log while the TUI owns the
// terminal and returns a func that restores stderr.
func redirectLog() func() {
	restore := func() { debug.SetOutput(os.Stderr) }

	dir := config.StateDir()
	if dir == "" {
		debug.SetOutput(io.Discard)
		return restore
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		debug.SetOutput(io.Discard)
		return restore
	}
	f, err := os.OpenFile(filepath.Join(dir, "wt.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		debug.SetOutput(io.Discard)
		return restore
	}
	debug.SetOutput(f)
	return func() {
		restore()
		f.Close()
	}
}

func runTUIProgram(ctx context.Context, m ui.Model, texts *icontext.Store) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if err := texts.Watch(watchCtx, func(err error) {
		p.Send(ui.IconTextsReloadedMsg{Err: err})
	}); err != nil {
		debug.Warn(err, "watching icon texts")
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set WT_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("WT_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	start := time.Now()
	_, err := p.Run()
	debug.LogTiming("tui session", time.Since(start))
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
