package server

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// normalizeText converts browser line breaks to "\n". The value is otherwise
// kept as typed; pages escape it on output.
func normalizeText(raw string) string {
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

// containsMarkup reports whether the strict policy would drop part of raw.
// Entities are compared decoded so "AT&amp;T" and "A & B" are plain text.
func containsMarkup(raw string) bool {
	if !strings.Contains(raw, "<") {
		return false
	}
	cleaned := textSanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned) != html.UnescapeString(raw)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
