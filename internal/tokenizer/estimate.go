package tokenizer

import (
	"math"
	"strings"
	"unicode"
)

const (
	defaultLatinCharsPerToken    = 4.0
	defaultNonLatinCharsPerToken = 2.0
)

// Estimator approximates token counts from rune classes. Latin-script text
// averages about four characters per token in BPE vocabularies; Cyrillic and
// other scripts split much finer.
type Estimator struct {
	LatinCharsPerToken    float64
	NonLatinCharsPerToken float64
}

func NewEstimator() *Estimator {
	return &Estimator{
		LatinCharsPerToken:    defaultLatinCharsPerToken,
		NonLatinCharsPerToken: defaultNonLatinCharsPerToken,
	}
}

// Count never fails; whitespace-only input counts as zero.
func (e *Estimator) Count(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	latinRatio, otherRatio := defaultLatinCharsPerToken, defaultNonLatinCharsPerToken
	if e != nil && e.LatinCharsPerToken > 0 {
		latinRatio = e.LatinCharsPerToken
	}
	if e != nil && e.NonLatinCharsPerToken > 0 {
		otherRatio = e.NonLatinCharsPerToken
	}

	var latin, other int
	for _, r := range text {
		if r <= unicode.MaxASCII || unicode.Is(unicode.Latin, r) {
			latin++
			continue
		}
		other++
	}

	tokens := math.Ceil(float64(latin)/latinRatio) + math.Ceil(float64(other)/otherRatio)
	return max(1, int(tokens)), nil
}
