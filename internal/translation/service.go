package translation

import (
	"context"

	"horse.fit/textlens/internal/language"
)

// Capability translates batches of sentence units for one language pair. It
// must return exactly one output per input, in input order.
type Capability interface {
	TranslateBatch(ctx context.Context, batch []string) ([]string, error)
	Name() string
}

// Backend builds capabilities for the pairs it can serve.
type Backend interface {
	ForPair(pair language.Pair) Capability
	Name() string
}

// CapabilityFunc adapts a function to Capability.
type CapabilityFunc func(ctx context.Context, batch []string) ([]string, error)

func (f CapabilityFunc) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
	return f(ctx, batch)
}

func (f CapabilityFunc) Name() string {
	return "func"
}

// Request describes one text translation.
type Request struct {
	Text       string
	SourceLang language.Code
	TargetLang language.Code
}

// Result is a completed translation with execution metadata.
type Result struct {
	Text       string        `json:"translated_text"`
	Pair       language.Pair `json:"-"`
	Capability string        `json:"capability"`
	Units      int           `json:"units"`
	Batches    int           `json:"batches"`
	LatencyMs  int64         `json:"latency_ms"`
}
