// Package langdetect identifies which readability language a text is written in.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"

	"horse.fit/textlens/internal/language"
)

const minLetters = 6

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Detect returns ru, en or kk, or "" when the text is too short or the
// detector is not confident.
func Detect(text string) language.Code {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minLetters {
		return ""
	}

	detected, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := language.NormalizeCode(detected.IsoCode639_1().String())
	if !language.IsReadability(code) {
		return ""
	}
	return code
}

// Resolve returns requested unless it is blank or "auto", in which case the
// language is detected from text.
func Resolve(requested language.Code, text string) language.Code {
	code := language.NormalizeCode(string(requested))
	if code != "" && code != language.Auto {
		return code
	}
	return Detect(text)
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Russian, lingua.English, lingua.Kazakh).
			WithMinimumRelativeDistance(0.1).
			Build()
	})
	return detector
}
