// Package chunker splits raw text into sentence units that fit the
// translation model's token budget.
package chunker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"horse.fit/textlens/internal/tokenizer"
)

// DefaultMaxTokens is the per-unit token budget of the default translation model.
const DefaultMaxTokens = 460

var (
	ErrUnitTooLong = errors.New("unit exceeds token budget")

	newlineRun    = regexp.MustCompile(`[\r\n]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// UnitTooLongError reports the first unit that does not fit the budget.
type UnitTooLongError struct {
	Text   string
	Tokens int
	Max    int
}

func (e *UnitTooLongError) Error() string {
	return fmt.Sprintf("unit has %d tokens, limit is %d: %q", e.Tokens, e.Max, preview(e.Text, 80))
}

func (e *UnitTooLongError) Unwrap() error {
	return ErrUnitTooLong
}

// Unit is one sentence-level piece of the input.
type Unit struct {
	Text   string `json:"text"`
	Tokens int    `json:"tokens"`
}

// Chunker splits text on line breaks and ". " separators. Abbreviations and
// decimals followed by ". " are split too.
type Chunker struct {
	counter   tokenizer.Counter
	maxTokens int
}

// New builds a chunker. A nil counter falls back to the rune estimator and a
// non-positive maxTokens to DefaultMaxTokens.
func New(counter tokenizer.Counter, maxTokens int) *Chunker {
	if counter == nil {
		counter = tokenizer.NewEstimator()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Chunker{counter: counter, maxTokens: maxTokens}
}

// MaxTokens returns the per-unit budget.
func (c *Chunker) MaxTokens() int {
	return c.maxTokens
}

// Chunk returns the units of raw in order. When any unit exceeds the budget no
// units are returned and the error matches ErrUnitTooLong.
func (c *Chunker) Chunk(raw string) ([]Unit, error) {
	texts := Split(raw)
	units := make([]Unit, 0, len(texts))
	for _, text := range texts {
		tokens, err := c.counter.Count(text)
		if err != nil {
			return nil, fmt.Errorf("count tokens: %w", err)
		}
		if tokens > c.maxTokens {
			return nil, &UnitTooLongError{Text: text, Tokens: tokens, Max: c.maxTokens}
		}
		units = append(units, Unit{Text: text, Tokens: tokens})
	}
	return units, nil
}

// Split applies the splitting rules without measuring tokens. Newline runs
// are hard boundaries; inside each line whitespace is collapsed and the line
// is split on ". ".
func Split(raw string) []string {
	var units []string
	for _, line := range newlineRun.Split(norm.NFC.String(raw), -1) {
		line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		for _, part := range strings.Split(line, ". ") {
			part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
			if part != "" {
				units = append(units, part)
			}
		}
	}
	return units
}

// Texts returns the text of each unit.
func Texts(units []Unit) []string {
	out := make([]string, len(units))
	for i, unit := range units {
		out[i] = unit.Text
	}
	return out
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
