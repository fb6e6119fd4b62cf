package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DBMinConns:          1,
		DBMaxConns:          8,
		TranslationProvider: "OpenAI ",
		TranslationPairs:    "ru:en,en:ru,kk:en",
		TranslationTimeout:  time.Minute,
		MaxUnitTokens:       460,
		BatchSize:           8,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if cfg.Provider() != ProviderOpenAI {
		t.Fatalf("Provider() = %q", cfg.Provider())
	}
	if pairs := cfg.Pairs(); len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %v", pairs)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "provider", mutate: func(c *Config) { c.TranslationProvider = "google" }, want: "TRANSLATION_PROVIDER"},
		{name: "pairs", mutate: func(c *Config) { c.TranslationPairs = "ru-en" }, want: "TRANSLATION_PAIRS"},
		{name: "conns", mutate: func(c *Config) { c.DBMinConns = 9 }, want: "DB_MIN_CONNS"},
		{name: "tokens", mutate: func(c *Config) { c.MaxUnitTokens = 0 }, want: "MAX_UNIT_TOKENS"},
		{name: "timeout", mutate: func(c *Config) { c.TranslationTimeout = 0 }, want: "TRANSLATION_TIMEOUT"},
		{name: "rps", mutate: func(c *Config) { c.TranslationRPS = -1 }, want: "TRANSLATION_RPS"},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected %s error, got %v", tc.name, tc.want, err)
		}
	}
}

func TestSentimentModelNameFallsBackToTranslationModel(t *testing.T) {
	t.Parallel()

	cfg := Config{TranslationModel: "hy-mt"}
	if got := cfg.SentimentModelName(); got != "hy-mt" {
		t.Fatalf("SentimentModelName() = %q", got)
	}
	cfg.SentimentModel = "sentiment-small"
	if got := cfg.SentimentModelName(); got != "sentiment-small" {
		t.Fatalf("SentimentModelName() = %q", got)
	}
	if (&Config{DatabaseURL: "  "}).HasDatabase() {
		t.Fatalf("blank DATABASE_URL should disable history")
	}
}
