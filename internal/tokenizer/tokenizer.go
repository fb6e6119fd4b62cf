// Package tokenizer measures text in model tokens so chunks can be kept under
// the translation model's context budget.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	hftokenizer "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Counter reports how many model tokens text occupies.
type Counter interface {
	Count(text string) (int, error)
}

// CounterFunc adapts a plain function to Counter.
type CounterFunc func(text string) (int, error)

func (f CounterFunc) Count(text string) (int, error) {
	return f(text)
}

// HuggingFace counts tokens with a tokenizer.json file produced by the
// Hugging Face tokenizers library, which is what the translation models ship.
type HuggingFace struct {
	mu sync.Mutex
	tk *hftokenizer.Tokenizer
}

// LoadHuggingFace reads a tokenizer.json file.
func LoadHuggingFace(path string) (*HuggingFace, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("tokenizer path is required")
	}
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	return &HuggingFace{tk: tk}, nil
}

// Count encodes text without special tokens and returns the id count.
func (h *HuggingFace) Count(text string) (int, error) {
	if h == nil || h.tk == nil {
		return 0, fmt.Errorf("tokenizer is not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	enc, err := h.tk.EncodeSingle(text, false)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	return len(enc.Ids), nil
}

// New returns a HuggingFace counter for path, or the rune estimator when path
// is blank.
func New(path string) (Counter, error) {
	if strings.TrimSpace(path) == "" {
		return NewEstimator(), nil
	}
	return LoadHuggingFace(path)
}
