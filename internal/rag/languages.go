// File path: internal/rag/languages.go
package rag

import "strings"

// supportedLanguages is the fixed closed set of translation targets. An
// unsupported code is rejected before reaching the collaborator.
var supportedLanguages = map[string]string{
	"hi": "Hindi",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// LanguageName resolves a target code to its display name.
func LanguageName(code string) (string, bool) {
	name, ok := supportedLanguages[strings.ToLower(strings.TrimSpace(code))]
	return name, ok
}

// SupportedLanguages returns a copy of the code-to-name table.
func SupportedLanguages() map[string]string {
	out := make(map[string]string, len(supportedLanguages))
	for code, name := range supportedLanguages {
		out[code] = name
	}
	return out
}
