package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"horse.fit/textlens/internal/language"
)

const (
	ProviderOpenAI         = "openai"
	ProviderLibreTranslate = "libretranslate"
	ProviderAnthropic      = "anthropic"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"8"`

	TranslationProvider string        `envconfig:"TRANSLATION_PROVIDER" default:"openai"`
	TranslationPairs    string        `envconfig:"TRANSLATION_PAIRS" default:"ru:en,en:ru,kk:en"`
	TranslationEndpoint string        `envconfig:"TRANSLATION_ENDPOINT" default:"http://127.0.0.1:8845/v1"`
	TranslationModel    string        `envconfig:"TRANSLATION_MODEL" default:"tencent/HY-MT1.5-7B"`
	TranslationAPIKey   string        `envconfig:"TRANSLATION_API_KEY" default:""`
	LibreTranslateURL   string        `envconfig:"LIBRETRANSLATE_URL" default:"http://127.0.0.1:5000"`
	AnthropicBaseURL    string        `envconfig:"ANTHROPIC_BASE_URL" default:""`
	AnthropicModel      string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-5-haiku-latest"`
	TranslationRPS      float64       `envconfig:"TRANSLATION_RPS" default:"0"`
	TranslationTimeout  time.Duration `envconfig:"TRANSLATION_TIMEOUT" default:"120s"`
	MaxUnitTokens       int           `envconfig:"MAX_UNIT_TOKENS" default:"460"`
	BatchSize           int           `envconfig:"BATCH_SIZE" default:"8"`
	TokenizerPath       string        `envconfig:"TOKENIZER_PATH" default:""`

	HyphenationDir string `envconfig:"HYPHENATION_DIR" default:""`

	SentimentEnabled bool   `envconfig:"SENTIMENT_ENABLED" default:"false"`
	SentimentModel   string `envconfig:"SENTIMENT_MODEL" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	switch c.Provider() {
	case ProviderOpenAI, ProviderLibreTranslate, ProviderAnthropic:
	default:
		return fmt.Errorf("TRANSLATION_PROVIDER must be %q, %q or %q, got %q", ProviderOpenAI, ProviderLibreTranslate, ProviderAnthropic, c.TranslationProvider)
	}
	if _, err := language.ParsePairs(c.TranslationPairs); err != nil {
		return fmt.Errorf("TRANSLATION_PAIRS: %w", err)
	}
	if c.TranslationRPS < 0 {
		return fmt.Errorf("TRANSLATION_RPS must be >= 0")
	}
	if c.TranslationTimeout <= 0 {
		return fmt.Errorf("TRANSLATION_TIMEOUT must be > 0")
	}
	if c.MaxUnitTokens < 1 {
		return fmt.Errorf("MAX_UNIT_TOKENS must be >= 1")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("BATCH_SIZE must be >= 0")
	}
	return nil
}

// Provider returns the normalized TRANSLATION_PROVIDER value.
func (c *Config) Provider() string {
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(c.TranslationProvider))
}

// Pairs returns the parsed TRANSLATION_PAIRS list.
func (c *Config) Pairs() []language.Pair {
	if c == nil {
		return nil
	}
	pairs, err := language.ParsePairs(c.TranslationPairs)
	if err != nil {
		return nil
	}
	return pairs
}

// HasDatabase reports whether history persistence is configured.
func (c *Config) HasDatabase() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

// SentimentModelName falls back to the translation model.
func (c *Config) SentimentModelName() string {
	if c == nil {
		return ""
	}
	if model := strings.TrimSpace(c.SentimentModel); model != "" {
		return model
	}
	return strings.TrimSpace(c.TranslationModel)
}
