// Package i18n holds the languages offered by the portal language switcher
// and matches user-supplied BCP 47 tags against them.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is an entry of the language switcher.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DefaultLanguage is used when no preference was stored.
const DefaultLanguage = "en"

// SupportedLanguages lists the portal languages in switcher order.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "हिन्दी"},
	{Code: "bn", Name: "বাংলা"},
	{Code: "ta", Name: "தமிழ்"},
	{Code: "te", Name: "తెలుగు"},
	{Code: "mr", Name: "मराठी"},
}

var (
	supportedTags []language.Tag
	matcher       language.Matcher
)

func init() {
	supportedTags = make([]language.Tag, 0, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		supportedTags = append(supportedTags, language.MustParse(l.Code))
	}
	matcher = language.NewMatcher(supportedTags)
}

// Match resolves a language tag such as "hi", "hi-IN" or "EN-gb" to a
// supported language. It reports false for malformed or unsupported tags.
func Match(tag string) (Language, bool) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return Language{}, false
	}

	_, idx, conf := matcher.Match(parsed)
	if conf < language.High || idx < 0 || idx >= len(SupportedLanguages) {
		return Language{}, false
	}
	return SupportedLanguages[idx], true
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header, falling back to DefaultLanguage.
func MatchAcceptLanguage(header string) Language {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return SupportedLanguages[0]
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return SupportedLanguages[0]
	}
	return SupportedLanguages[idx]
}

// IsSupported checks if a language code is offered by the switcher.
func IsSupported(code string) bool {
	_, ok := Match(code)
	return ok
}
