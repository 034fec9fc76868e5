package icontext

import (
	"context"
	"fmt"
	"sync"

	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/metrics"
	"github.com/vanderheijden86/walkthrough/pkg/watcher"
)

// LoadErrorText is shown when the icon text asset cannot be read or parsed.
const LoadErrorText = "Failed to load icon texts"

// State is what the text panel displays.
type State struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Text    string `json:"text"`
}

// Store holds the icon texts and the current display state. It is safe for
// concurrent use; Watch reloads from a background goroutine.
type Store struct {
	mu    sync.RWMutex
	path  string
	lang  Language
	texts Texts
	state State
}

// NewStore creates a store reading from path. An empty path uses the
// embedded texts. Call Load before Show.
func NewStore(path string) *Store {
	return &Store{path: path, lang: English}
}

// Path returns the asset path, empty for the embedded texts.
func (s *Store) Path() string {
	return s.path
}

// Load (re)reads the asset. On failure the previous texts are kept and the
// state carries LoadErrorText; the returned error has the cause.
func (s *Store) Load() error {
	s.setState(State{Loading: true})
	defer metrics.Timer(metrics.IconTextLoad)()

	var (
		texts Texts
		err   error
	)
	if s.path == "" {
		texts = DefaultTexts()
	} else {
		texts, err = ReadTexts(s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		debug.Warn(err, "loading icon texts")
		s.state = State{Error: LoadErrorText}
		return err
	}
	s.texts = texts
	s.state = State{}
	debug.Log("icon texts loaded: %d icons from %q", len(texts), s.path)
	return nil
}

// SetLanguage changes the language used by later Show calls.
func (s *Store) SetLanguage(lang Language) {
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()
}

// Language returns the current language.
func (s *Store) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Show makes icon's text the current state and returns it. Before any
// successful load every icon shows LoadErrorText; unknown icons get a
// per-icon error.
func (s *Store) Show(icon string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.texts == nil {
		s.state = State{Error: LoadErrorText}
		return s.state
	}
	text, ok := s.texts.Lookup(icon, s.lang)
	if !ok {
		debug.Log("no text found for icon %q", icon)
		s.state = State{Error: fmt.Sprintf("No text found for icon: %s", icon)}
		return s.state
	}
	s.state = State{Text: text}
	return s.state
}

// Lookup returns icon's text in the current language without touching the
// display state.
func (s *Store) Lookup(icon string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts.Lookup(icon, s.lang)
}

// State returns the current display state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Clear resets the display state.
func (s *Store) Clear() {
	s.setState(State{})
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Watch reloads the asset whenever the file changes until ctx is done.
// onReload, if non-nil, runs after each reload with its result. Watching the
// embedded texts is a no-op.
func (s *Store) Watch(ctx context.Context, onReload func(error)) error {
	if s.path == "" {
		return nil
	}
	w, err := watcher.New(s.path,
		watcher.WithOnError(func(err error) {
			debug.Warn(err, "watching icon texts")
		}),
	)
	if err != nil {
		return fmt.Errorf("watching icon texts: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watching icon texts: %w", err)
	}
	debug.Log("watching %s (fs=%s polling=%t interval=%v)",
		w.Path(), w.FilesystemType(), w.IsPolling(), w.PollInterval())

	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Changed():
				err := s.Load()
				if onReload != nil {
					onReload(err)
				}
			}
		}
	}()
	return nil
}
