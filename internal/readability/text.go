package readability

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"horse.fit/textlens/internal/language"
)

// sentenceRules is one language family's sentence boundary policy.
type sentenceRules struct {
	abbreviations map[string]struct{}
	// requireCapital demands that the next sentence open with an upper-case
	// letter, digit, quote or dash.
	requireCapital bool
}

var (
	englishRules = sentenceRules{
		abbreviations: setOf(
			"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs", "etc",
			"e.g", "i.e", "inc", "ltd", "co", "no", "fig", "approx", "dept",
			"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
		),
	}
	cyrillicRules = sentenceRules{
		abbreviations: setOf(
			"т.е", "т.д", "т.п", "т.к", "др", "пр", "г", "гг", "ул", "см", "им",
			"проф", "тыс", "млн", "млрд", "руб", "стр", "рис", "напр", "акад",
			"обл", "р", "с", "т", "в", "вв", "жж", "ж", "б.з.б", "т.б",
		),
		requireCapital: true,
	}
)

// rulesFor returns the sentence rules for lang. Russian and Kazakh share one
// ruleset; everything else uses the English rules.
func rulesFor(lang language.Code) sentenceRules {
	switch lang {
	case language.Russian, language.Kazakh:
		return cyrillicRules
	default:
		return englishRules
	}
}

// normalizeText applies NFC so composed and decomposed Cyrillic letters count alike.
func normalizeText(text string) string {
	return norm.NFC.String(text)
}

// SplitSentences splits text into sentences using the rules for lang.
func SplitSentences(text string, lang language.Code) []string {
	return rulesFor(lang).split(normalizeText(text))
}

func (r sentenceRules) split(text string) []string {
	runes := []rune(text)
	var (
		sentences []string
		start     int
	)
	emit := func(end int) {
		s := strings.TrimSpace(string(runes[start:end]))
		if s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		r0 := runes[i]

		if r0 == '\n' {
			// A blank line always closes the current sentence.
			j, newlines := i, 0
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				if runes[j] == '\n' {
					newlines++
				}
				j++
			}
			if newlines >= 2 {
				emit(i)
			}
			i = j - 1
			continue
		}

		if !isTerminator(r0) {
			continue
		}

		end := i + 1
		for end < len(runes) && (isTerminator(runes[end]) || isCloser(runes[end])) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}
		if r0 == '.' && r.isAbbreviation(runes[start:i]) {
			i = end - 1
			continue
		}
		if r.requireCapital && !opensSentence(runes[end:]) {
			i = end - 1
			continue
		}
		emit(end)
		i = end - 1
	}
	emit(len(runes))
	return sentences
}

func (r sentenceRules) isAbbreviation(before []rune) bool {
	k := len(before)
	for k > 0 && !unicode.IsSpace(before[k-1]) {
		k--
	}
	raw := []rune(strings.TrimLeftFunc(string(before[k:]), isOpener))
	if len(raw) == 0 {
		return false
	}
	if _, ok := r.abbreviations[strings.ToLower(string(raw))]; ok {
		return true
	}
	// Initials such as "А." or "J." do not end a sentence.
	return len(raw) == 1 && unicode.IsUpper(raw[0])
}

// opensSentence reports whether the text after a terminator starts a new sentence.
func opensSentence(rest []rune) bool {
	for _, r := range rest {
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.IsUpper(r) || unicode.IsDigit(r) || isOpener(r)
	}
	return true
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '»', '”', '’':
		return true
	}
	return false
}

func isOpener(r rune) bool {
	switch r {
	case '"', '\'', '(', '[', '«', '“', '—', '–', '-':
		return true
	}
	return false
}

// Words returns the alphabetic word tokens of text. Apostrophes inside a word
// ("don't") are kept as part of it; tokens containing digits are dropped.
func Words(text string) []string {
	tokens := strings.FieldsFunc(normalizeText(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || isApostrophe(r))
	})

	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimFunc(token, isApostrophe)
		if token == "" || !isAlphabetic(token) {
			continue
		}
		words = append(words, token)
	}
	return words
}

func isAlphabetic(token string) bool {
	letters := 0
	for _, r := range token {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsMark(r), isApostrophe(r):
		default:
			return false
		}
	}
	return letters > 0
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

// stripApostrophes removes word-internal apostrophes before syllable counting.
func stripApostrophes(word string) string {
	return strings.Map(func(r rune) rune {
		if isApostrophe(r) {
			return -1
		}
		return r
	}, word)
}

func setOf(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
