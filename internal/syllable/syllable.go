// Package syllable estimates per-word syllable counts for the readability
// languages.
package syllable

import (
	"strings"

	"horse.fit/textlens/internal/language"
)

// kazakhVowels covers the Cyrillic vowels plus the Kazakh-specific letters.
const kazakhVowels = "аеёиоуыэюяіүұөә"

// Hyphenator returns the rune offsets where a word may be broken.
type Hyphenator interface {
	Hyphenate(word string) []int
}

// HyphenatorFunc adapts a plain function to Hyphenator.
type HyphenatorFunc func(word string) []int

func (f HyphenatorFunc) Hyphenate(word string) []int {
	return f(word)
}

// Estimator counts syllables. Kazakh uses vowel counting; Russian and English
// use a per-language hyphenator.
type Estimator struct {
	hyphenators map[language.Code]Hyphenator
}

// NewEstimator builds an estimator. Russian and English entries missing from
// hyphenators fall back to the built-in vowel-group hyphenators.
func NewEstimator(hyphenators map[language.Code]Hyphenator) *Estimator {
	resolved := map[language.Code]Hyphenator{
		language.English: englishHyphenator{},
		language.Russian: russianHyphenator{},
	}
	for code, h := range hyphenators {
		if h == nil {
			continue
		}
		resolved[code] = h
	}
	return &Estimator{hyphenators: resolved}
}

// Default returns an estimator backed only by the built-in hyphenators.
func Default() *Estimator {
	return NewEstimator(nil)
}

// Count returns the syllable count of word in lang. The result is always >= 1;
// unknown languages count every word as one syllable.
func (e *Estimator) Count(word string, lang language.Code) int {
	lowered := strings.ToLower(strings.TrimSpace(word))
	if lowered == "" {
		return 1
	}

	if lang == language.Kazakh {
		vowels := 0
		for _, r := range lowered {
			if strings.ContainsRune(kazakhVowels, r) {
				vowels++
			}
		}
		return max(1, vowels)
	}

	if e == nil {
		return 1
	}
	h, ok := e.hyphenators[lang]
	if !ok {
		return 1
	}
	return max(1, len(h.Hyphenate(lowered))+1)
}

type englishHyphenator struct{}

func (englishHyphenator) Hyphenate(word string) []int {
	runes := []rune(word)
	breaks := vowelGroupBreaks(runes, isVowelRune)

	// Silent trailing "e" ("make", "stone") does not open a syllable, but a
	// consonant + "le" ending ("table") does.
	n := len(runes)
	if len(breaks) > 0 && n >= 2 && runes[n-1] == 'e' && !isVowelRune(runes[n-2]) {
		if !(runes[n-2] == 'l' && n >= 3 && !isVowelRune(runes[n-3])) {
			breaks = breaks[:len(breaks)-1]
		}
	}
	return breaks
}

type russianHyphenator struct{}

func (russianHyphenator) Hyphenate(word string) []int {
	runes := []rune(word)
	var breaks []int
	seen := false
	for i, r := range runes {
		if !strings.ContainsRune("аеёиоуыэюя", r) {
			continue
		}
		if seen {
			breaks = append(breaks, max(1, i-1))
		}
		seen = true
	}
	return breaks
}

// vowelGroupBreaks places one break before every vowel group after the first.
func vowelGroupBreaks(runes []rune, isVowel func(rune) bool) []int {
	var breaks []int
	inGroup := false
	groups := 0
	lastGroupEnd := 0
	for i, r := range runes {
		if isVowel(r) {
			if !inGroup {
				groups++
				if groups > 1 {
					pos := i
					if i-1 > lastGroupEnd {
						pos = i - 1
					}
					breaks = append(breaks, pos)
				}
			}
			inGroup = true
			continue
		}
		if inGroup {
			lastGroupEnd = i
		}
		inGroup = false
	}
	return breaks
}

func isVowelRune(r rune) bool {
	return strings.ContainsRune("aeiouy", r)
}
