// Package icontext looks up the per-language display text for icons and the
// small table of UI strings shown around the walkthrough.
package icontext

import (
	"errors"
	"fmt"
	"strings"
)

// Language is a supported display language.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
)

// ErrUnknownLanguage is returned for language codes outside Languages().
var ErrUnknownLanguage = errors.New("unknown language")

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{English, Spanish, French}
}

// ParseLanguage accepts a case-insensitive language code.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Languages() {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Next cycles to the following language, wrapping around.
func (l Language) Next() Language {
	langs := Languages()
	for i, known := range langs {
		if known == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return English
}
