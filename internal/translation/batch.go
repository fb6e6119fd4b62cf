package translation

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// BatchTranslator sends units to a capability in contiguous, sequential batches.
type BatchTranslator struct {
	logger zerolog.Logger
}

func NewBatchTranslator(logger zerolog.Logger) *BatchTranslator {
	return &BatchTranslator{logger: logger}
}

// Translate returns one translation per unit, in order. A non-positive
// batchSize sends every unit in a single batch. The first failing batch aborts
// the call.
func (b *BatchTranslator) Translate(ctx context.Context, units []string, capability Capability, batchSize int) ([]string, error) {
	if len(units) == 0 {
		return []string{}, nil
	}
	if batchSize <= 0 || batchSize > len(units) {
		batchSize = len(units)
	}

	name := capability.Name()
	out := make([]string, 0, len(units))
	for start, batchNo := 0, 1; start < len(units); start, batchNo = start+batchSize, batchNo+1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+batchSize, len(units))
		batch := units[start:end]

		b.logger.Debug().
			Str("capability", name).
			Int("batch", batchNo).
			Int("units", len(batch)).
			Int("done", start).
			Int("total", len(units)).
			Msg("translating batch")

		translated, err := capability.TranslateBatch(ctx, batch)
		if err != nil {
			return nil, &CapabilityError{Capability: name, Batch: batchNo, Err: err}
		}
		if len(translated) != len(batch) {
			mismatch := &BatchLengthMismatchError{
				Capability: name,
				Batch:      batchNo,
				Want:       len(batch),
				Got:        len(translated),
			}
			b.logger.Error().Err(mismatch).Msg("capability broke batch contract")
			return nil, mismatch
		}
		out = append(out, translated...)
	}
	return out, nil
}

// Assemble joins translated units into running text. Pieces without terminal
// punctuation get a period.
func Assemble(translated []string) string {
	pieces := make([]string, 0, len(translated))
	for _, piece := range translated {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if !endsSentence(piece) {
			piece += "."
		}
		pieces = append(pieces, piece)
	}
	return strings.Join(pieces, " ")
}

// PostProcess normalizes assembled output: semicolons become sentence breaks
// and every sentence starts with an upper-case letter.
func PostProcess(text string) string {
	text = strings.ReplaceAll(text, ";", ".")
	sentences := strings.Split(text, ". ")
	for i, sentence := range sentences {
		sentences[i] = upperFirst(sentence)
	}
	return strings.Join(sentences, ". ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func endsSentence(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}
