package models

import (
	"fmt"
	"strings"
)

// Language represents a target language for translations
// Used for selecting the translation shown next to a Sango word
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageRussian Language = "ru"
)

// SupportedLanguages returns all target languages in display order
func SupportedLanguages() []Language {
	return []Language{LanguageFrench, LanguageRussian}
}

// Valid reports whether the language is one of the supported codes
func (l Language) Valid() bool {
	return l == LanguageFrench || l == LanguageRussian
}

// ParseLanguage converts a request parameter into a Language.
// The value is case-insensitive and surrounding whitespace is ignored.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q, must be 'fr' or 'ru'", ErrInvalidLanguage, s)
	}
	return l, nil
}

// DisplayName returns the language name as written in that language
func (l Language) DisplayName() string {
	switch l {
	case LanguageFrench:
		return "Français"
	case LanguageRussian:
		return "Русский"
	default:
		return string(l)
	}
}
