package language

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a primary ISO 639-1 language subtag such as "ru".
type Code string

const (
	Russian Code = "ru"
	English Code = "en"
	Kazakh  Code = "kk"

	// Auto asks the caller to detect the language before dispatching.
	Auto Code = "auto"
)

type languageLabel struct {
	english string
	native  string
}

var languageLabels = map[Code]languageLabel{
	Russian: {english: "Russian", native: "Русский"},
	English: {english: "English", native: "English"},
	Kazakh:  {english: "Kazakh", native: "Қазақша"},
}

// Option describes one language for API and CLI listings.
type Option struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Native string `json:"native,omitempty"`
}

// Readability lists the languages the readability engine has coefficients for.
func Readability() []Code {
	return []Code{Russian, English, Kazakh}
}

// IsReadability reports whether code is one of the readability languages.
func IsReadability(code Code) bool {
	_, ok := languageLabels[code]
	return ok
}

func (c Code) String() string {
	return string(c)
}

// Label returns the English display name, or the upper-cased code when unknown.
func (c Code) Label() string {
	if labels, ok := languageLabels[c]; ok {
		return labels.english
	}
	return strings.ToUpper(string(c))
}

// Options converts codes into display options sorted by code.
func Options(codes []Code) []Option {
	sorted := append([]Code(nil), codes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	options := make([]Option, 0, len(sorted))
	for _, code := range sorted {
		labels, ok := languageLabels[code]
		if !ok {
			options = append(options, Option{Code: string(code), Label: code.Label()})
			continue
		}
		options = append(options, Option{
			Code:   string(code),
			Label:  labels.english,
			Native: labels.native,
		})
	}
	return options
}

// Pair is a (source, target) translation direction.
type Pair struct {
	Source Code
	Target Code
}

func (p Pair) String() string {
	return string(p.Source) + ":" + string(p.Target)
}

// ParsePair parses "ru:en" or "ru>en" into a Pair.
func ParsePair(raw string) (Pair, error) {
	trimmed := strings.TrimSpace(raw)
	sep := strings.IndexAny(trimmed, ":>")
	if sep < 0 {
		return Pair{}, fmt.Errorf("language pair %q must look like src:tgt", raw)
	}
	src := NormalizeCode(trimmed[:sep])
	tgt := NormalizeCode(trimmed[sep+1:])
	if src == "" || tgt == "" {
		return Pair{}, fmt.Errorf("language pair %q has an invalid code", raw)
	}
	if src == tgt {
		return Pair{}, fmt.Errorf("language pair %q translates into itself", raw)
	}
	return Pair{Source: src, Target: tgt}, nil
}

// ParsePairs parses a comma-separated pair list, skipping blanks and duplicates.
func ParsePairs(raw string) ([]Pair, error) {
	parts := strings.Split(raw, ",")
	pairs := make([]Pair, 0, len(parts))
	seen := make(map[Pair]struct{}, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pair, err := ParsePair(part)
		if err != nil {
			return nil, err
		}
		if _, exists := seen[pair]; exists {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
