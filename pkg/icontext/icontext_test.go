package icontext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"en", English, false},
		{" ES ", Spanish, false},
		{"Fr", French, false},
		{"de", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseLanguage(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLanguage(%q) err = %v", tc.in, err)
			continue
		}
		if tc.wantErr && !errors.Is(err, ErrUnknownLanguage) {
			t.Errorf("ParseLanguage(%q) err = %v, want ErrUnknownLanguage", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLanguageNextCycles(t *testing.T) {
	if English.Next() != Spanish || Spanish.Next() != French || French.Next() != English {
		t.Error("unexpected language cycle")
	}
	if Language("xx").Next() != English {
		t.Error("unknown language should cycle to English")
	}
}

func TestDefaultTextsCoverCatalogIcons(t *testing.T) {
	texts := DefaultTexts()
	icons := []string{"close", "forfeit", "help", "prep", "location", "chat",
		"more", "begin", "outfit", "selfie & video", "video", "face"}
	for _, icon := range icons {
		for _, lang := range Languages() {
			if s, ok := texts.Lookup(icon, lang); !ok || s == "" {
				t.Errorf("missing %s text for %q", lang, icon)
			}
		}
	}
}

func TestTextsLookupFallsBackToEnglish(t *testing.T) {
	texts, err := DecodeTexts([]byte(`{"chat":{"en":"Chat"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := texts.Lookup("chat", French); !ok || s != "Chat" {
		t.Errorf("Lookup fallback = %q, %v", s, ok)
	}
	if _, ok := texts.Lookup("video", English); ok {
		t.Error("unknown icon should be absent")
	}
	if got := texts.Icons(); len(got) != 1 || got[0] != "chat" {
		t.Errorf("Icons() = %v", got)
	}
}

func TestDecodeTextsInvalid(t *testing.T) {
	if _, err := DecodeTexts([]byte(`{"chat":`)); err == nil {
		t.Error("expected decode error")
	}
	texts, err := DecodeTexts([]byte(`null`))
	if err != nil || texts == nil {
		t.Errorf("null document should decode to empty texts, got %v, %v", texts, err)
	}
}

func TestStoreShow(t *testing.T) {
	s := NewStore("")
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	st := s.Show("chat")
	if st.Error != "" || st.Text == "" || st.Loading {
		t.Errorf("Show(chat) = %+v", st)
	}
	en := st.Text

	s.SetLanguage(Spanish)
	if st := s.Show("chat"); st.Text == en {
		t.Errorf("expected Spanish text to differ from English, got %q", st.Text)
	}

	st = s.Show("nonexistent")
	if st.Error != "No text found for icon: nonexistent" || st.Text != "" {
		t.Errorf("Show(nonexistent) = %+v", st)
	}
	if s.State() != st {
		t.Error("State() should return last shown state")
	}

	s.Clear()
	if s.State() != (State{}) {
		t.Errorf("Clear left %+v", s.State())
	}
}

func TestStoreLoadFailure(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err == nil {
		t.Fatal("expected load error")
	}
	if st := s.State(); st.Error != LoadErrorText || st.Loading {
		t.Errorf("state after failed load = %+v", st)
	}
	if st := s.Show("chat"); st.Error != LoadErrorText || st.Text != "" {
		t.Errorf("Show before successful load = %+v", st)
	}
}

func TestStoreReloadKeepsTextsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.json")
	if err := os.WriteFile(path, []byte(`{"help":{"en":"Help me"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(); err == nil {
		t.Fatal("expected parse error")
	}
	if text, ok := s.Lookup("help"); !ok || text != "Help me" {
		t.Errorf("previous texts lost: %q, %v", text, ok)
	}
}

func TestStoreWatchReloads(t *testing.T) {
	t.Setenv("WT_FORCE_POLL", "1")
	path := filepath.Join(t.TempDir(), "texts.json")
	if err := os.WriteFile(path, []byte(`{"help":{"en":"Old"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan error, 4)
	if err := s.Watch(ctx, func(err error) { reloaded <- err }); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{"help":{"en":"Brand new"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if text, _ := s.Lookup("help"); text != "Brand new" {
		t.Errorf("Lookup after reload = %q", text)
	}
}

func TestStoreWatchEmbeddedIsNoop(t *testing.T) {
	if err := NewStore("").Watch(context.Background(), nil); err != nil {
		t.Errorf("Watch on embedded texts = %v", err)
	}
}

func TestTranslator(t *testing.T) {
	tr := NewTranslator()
	if got := tr.T("welcome"); got != "Welcome to the App" {
		t.Errorf("T(welcome) = %q", got)
	}

	if err := tr.SetLanguage("fr"); err != nil {
		t.Fatal(err)
	}
	if got := tr.T("next"); got != "Suivant" {
		t.Errorf("T(next) in fr = %q", got)
	}
	if got := tr.T("startTour"); got != "Start tour" {
		t.Errorf("missing French key should fall back to English, got %q", got)
	}
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key should return itself, got %q", got)
	}

	if err := tr.SetLanguage("klingon"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("SetLanguage(klingon) = %v", err)
	}
	if tr.Language() != French {
		t.Errorf("failed SetLanguage changed language to %q", tr.Language())
	}
}
