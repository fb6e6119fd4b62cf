package language

import "strings"

const maxSubtagLength = 8

// codeAliases maps ISO 639-2 codes and the "kz" country code, which users
// often type for Kazakh, to the two-letter codes used everywhere else.
var codeAliases = map[string]Code{
	"rus": Russian,
	"eng": English,
	"kaz": Kazakh,
	"kz":  Kazakh,
}

// NormalizeTag lowercases a language tag and joins its subtags with "-".
// Blank tags, non-letter characters and subtags longer than eight letters
// yield "".
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for _, part := range parts {
		if len(part) > maxSubtagLength || !isASCIILetters(part) {
			return ""
		}
	}
	return strings.Join(parts, "-")
}

// NormalizeCode returns the primary subtag of raw ("en" from "en-US", "kk"
// from "kaz"). "auto" is returned unchanged.
func NormalizeCode(raw string) Code {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}

	primary, _, _ := strings.Cut(tag, "-")
	if alias, ok := codeAliases[primary]; ok {
		return alias
	}
	return Code(primary)
}

func isASCIILetters(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
