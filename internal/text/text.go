// Package text normalizes raw sentence text for typing practice.
package text

import (
	"strings"
)

// CleanText lowercases text and drops every rune outside [a-z ].
// Spaces are kept as they are, so runs of spaces survive.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseCSV splits text on commas and newlines and returns the cleaned,
// whitespace-collapsed sentences. Pieces that clean to nothing are dropped.
func ParseCSV(s string) []string {
	if s == "" {
		return []string{}
	}

	pieces := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	sentences := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		cleaned := CleanText(strings.TrimSpace(piece))
		// Fields splits on spaces and drops empty runs
		collapsed := strings.Join(strings.Fields(cleaned), " ")
		if collapsed == "" {
			continue
		}
		sentences = append(sentences, collapsed)
	}
	return sentences
}
