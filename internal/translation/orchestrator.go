package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/textlens/internal/chunker"
	"horse.fit/textlens/internal/language"
)

// Orchestrator turns raw text into translated text: pair lookup, chunking,
// batched capability calls, assembly and post-processing. It keeps no state
// between calls and never retries.
type Orchestrator struct {
	registry  *Registry
	chunker   *chunker.Chunker
	batches   *BatchTranslator
	batchSize int
	logger    zerolog.Logger
}

func NewOrchestrator(registry *Registry, ch *chunker.Chunker, batchSize int, logger zerolog.Logger) *Orchestrator {
	if ch == nil {
		ch = chunker.New(nil, chunker.DefaultMaxTokens)
	}
	return &Orchestrator{
		registry:  registry,
		chunker:   ch,
		batches:   NewBatchTranslator(logger),
		batchSize: batchSize,
		logger:    logger,
	}
}

// Registry returns the pair registry the orchestrator dispatches through.
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// TranslateText translates text from src to tgt. On any failure it returns
// an empty string with the error.
func (o *Orchestrator) TranslateText(ctx context.Context, text string, src, tgt language.Code) (string, error) {
	result, err := o.Translate(ctx, Request{Text: text, SourceLang: src, TargetLang: tgt})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Translate is TranslateText with execution metadata.
func (o *Orchestrator) Translate(ctx context.Context, req Request) (*Result, error) {
	if o == nil {
		return nil, fmt.Errorf("translation orchestrator is not initialized")
	}

	pair := language.Pair{Source: req.SourceLang, Target: req.TargetLang}
	capability, err := o.registry.Lookup(pair)
	if err != nil {
		return nil, err
	}

	units, err := o.chunker.Chunk(req.Text)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	translated, err := o.batches.Translate(ctx, chunker.Texts(units), capability, o.batchSize)
	if err != nil {
		var capErr *CapabilityError
		if errors.As(err, &capErr) {
			capErr.Pair = pair
		}
		return nil, err
	}

	result := &Result{
		Text:       PostProcess(Assemble(translated)),
		Pair:       pair,
		Capability: capability.Name(),
		Units:      len(units),
		Batches:    batchCount(len(units), o.batchSize),
		LatencyMs:  time.Since(started).Milliseconds(),
	}

	o.logger.Debug().
		Str("pair", pair.String()).
		Str("capability", result.Capability).
		Int("units", result.Units).
		Int("batches", result.Batches).
		Int64("latency_ms", result.LatencyMs).
		Int("chars", len(strings.TrimSpace(result.Text))).
		Msg("translation complete")
	return result, nil
}

func batchCount(units, batchSize int) int {
	if units == 0 {
		return 0
	}
	if batchSize <= 0 || batchSize >= units {
		return 1
	}
	return (units + batchSize - 1) / batchSize
}
