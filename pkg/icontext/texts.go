package icontext

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"
)

//go:embed assets/icon-texts.json
var defaultTextsJSON []byte

// Texts maps an icon name to its text in each language.
type Texts map[string]map[Language]string

// DecodeTexts parses an icon text document of the form
// {"<icon>": {"en": "...", "es": "...", "fr": "..."}}.
func DecodeTexts(data []byte) (Texts, error) {
	var t Texts
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding icon texts: %w", err)
	}
	if t == nil {
		t = Texts{}
	}
	return t, nil
}

// ReadTexts reads and decodes an icon text file.
func ReadTexts(path string) (Texts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading icon texts: %w", err)
	}
	return DecodeTexts(data)
}

// DefaultTexts returns the texts bundled with the binary.
func DefaultTexts() Texts {
	t, err := DecodeTexts(defaultTextsJSON)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the text for icon in lang, falling back to English when the
// language entry is missing.
func (t Texts) Lookup(icon string, lang Language) (string, bool) {
	byLang, ok := t[icon]
	if !ok {
		return "", false
	}
	if s, ok := byLang[lang]; ok {
		return s, true
	}
	s, ok := byLang[English]
	return s, ok
}

// Icons returns the icon names in sorted order.
func (t Texts) Icons() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
