package translation

import (
	"fmt"

	"github.com/rs/zerolog"

	"horse.fit/textlens/internal/chunker"
	"horse.fit/textlens/internal/config"
	"horse.fit/textlens/internal/tokenizer"
)

// NewBackendFromConfig builds the backend selected by TRANSLATION_PROVIDER.
func NewBackendFromConfig(cfg *config.Config) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	switch cfg.Provider() {
	case config.ProviderOpenAI:
		return NewOpenAIBackend(OpenAIOptions{
			Endpoint: cfg.TranslationEndpoint,
			Model:    cfg.TranslationModel,
			APIKey:   cfg.TranslationAPIKey,
			RPS:      cfg.TranslationRPS,
			Timeout:  cfg.TranslationTimeout,
		}), nil
	case config.ProviderLibreTranslate:
		return NewLibreTranslateBackend(LibreTranslateOptions{
			URL:     cfg.LibreTranslateURL,
			APIKey:  cfg.TranslationAPIKey,
			RPS:     cfg.TranslationRPS,
			Timeout: cfg.TranslationTimeout,
		}), nil
	case config.ProviderAnthropic:
		return NewAnthropicBackend(AnthropicOptions{
			BaseURL: cfg.AnthropicBaseURL,
			Model:   cfg.AnthropicModel,
			APIKey:  cfg.TranslationAPIKey,
			RPS:     cfg.TranslationRPS,
			Timeout: cfg.TranslationTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("translation provider %q is not supported", cfg.TranslationProvider)
	}
}

// NewRegistryFromConfig registers the configured backend for every
// TRANSLATION_PAIRS entry.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	backend, err := NewBackendFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	if err := registry.RegisterBackend(backend, cfg.Pairs()); err != nil {
		return nil, err
	}
	return registry, nil
}

// NewOrchestratorFromConfig wires registry, tokenizer and chunker from cfg.
func NewOrchestratorFromConfig(cfg *config.Config, logger zerolog.Logger) (*Orchestrator, error) {
	registry, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	counter, err := tokenizer.New(cfg.TokenizerPath)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(registry, chunker.New(counter, cfg.MaxUnitTokens), cfg.BatchSize, logger), nil
}
