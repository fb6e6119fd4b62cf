package reader

import (
	"fmt"
	"strings"
)

func nonEmpty(text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("reader extracted empty content")
	}
	return text, nil
}

// CleanText normalizes line endings and collapses in-line whitespace. Each
// non-empty line becomes a paragraph; paragraphs are separated by a blank line.
func CleanText(raw string) string {
	lines := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	paragraphs := lines[:0]
	for _, line := range lines {
		if clean := strings.Join(strings.Fields(line), " "); clean != "" {
			paragraphs = append(paragraphs, clean)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// TruncateText clips text to maxChars runes, ending with "…" when clipped.
func TruncateText(raw string, maxChars int) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	runes := []rune(trimmed)
	if maxChars <= 0 || len(runes) <= maxChars {
		return trimmed, false
	}
	return strings.TrimSpace(string(runes[:maxChars-1])) + "…", true
}
