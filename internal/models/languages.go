package models

import "strings"

// Language is a translation target offered to the user.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages is the ordered registry of selectable target languages.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "te", Name: "Telugu"},
	{Code: "ta", Name: "Tamil"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "ru", Name: "Russian"},
	{Code: "th", Name: "Thai"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "zh-CN", Name: "Chinese (Simplified)"},
	{Code: "zh-TW", Name: "Chinese (Traditional)"},
}

// canonicalize normalizes separators and case of a language code (zh_cn -> zh-CN).
func canonicalize(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	base, region, ok := strings.Cut(code, "-")
	if !ok {
		return strings.ToLower(base)
	}
	return strings.ToLower(base) + "-" + strings.ToUpper(region)
}

// ResolveLanguage finds a registered language by code or by name, case-insensitively.
//
// Codes with an unknown region fall back to the base language.
func ResolveLanguage(query string) (Language, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Language{}, false
	}

	code := canonicalize(query)
	for _, l := range Languages {
		if l.Code == code || strings.EqualFold(l.Name, query) {
			return l, true
		}
	}

	if base, _, ok := strings.Cut(code, "-"); ok {
		for _, l := range Languages {
			if l.Code == base {
				return l, true
			}
		}
	}
	return Language{}, false
}

// FilterLanguages returns registered languages whose name contains filter, case-insensitively.
func FilterLanguages(filter string) []Language {
	filter = strings.ToLower(strings.TrimSpace(filter))
	matches := make([]Language, 0, len(Languages))
	for _, l := range Languages {
		if strings.Contains(strings.ToLower(l.Name), filter) {
			matches = append(matches, l)
		}
	}
	return matches
}

// LanguageName returns the display name for code, or code itself when unregistered.
func LanguageName(code string) string {
	if l, ok := ResolveLanguage(code); ok {
		return l.Name
	}
	return code
}
