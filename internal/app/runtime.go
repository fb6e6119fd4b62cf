package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"horse.fit/textlens/internal/analysis"
	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/config"
	"horse.fit/textlens/internal/db"
	"horse.fit/textlens/internal/logging"
	"horse.fit/textlens/internal/readability"
	"horse.fit/textlens/internal/reader"
	"horse.fit/textlens/internal/sentiment"
	"horse.fit/textlens/internal/syllable"
)

const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
	outputFormatText  = "text"
)

func loadRuntime(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

func newReadabilityEngine(cfg *config.Config) (*readability.Engine, error) {
	dir := strings.TrimSpace(cfg.HyphenationDir)
	if dir == "" {
		return readability.NewEngine(syllable.Default()), nil
	}
	hyphenators, err := syllable.LoadPatternDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load hyphenation patterns: %w", err)
	}
	return readability.NewEngine(syllable.NewEstimator(hyphenators)), nil
}

func newSentimentClassifier(cfg *config.Config) sentiment.Classifier {
	if !cfg.SentimentEnabled {
		return nil
	}
	return sentiment.NewOpenAIClassifier(sentiment.Options{
		Endpoint: cfg.TranslationEndpoint,
		Model:    cfg.SentimentModelName(),
		APIKey:   cfg.TranslationAPIKey,
		Timeout:  cfg.TranslationTimeout,
	})
}

func newAnalysisService(cfg *config.Config, logger zerolog.Logger) (*analysis.Service, error) {
	engine, err := newReadabilityEngine(cfg)
	if err != nil {
		return nil, err
	}
	return analysis.NewService(engine, newSentimentClassifier(cfg), logger), nil
}

// readInput returns the text named by --file, --url or the positional
// arguments. A single "-" argument reads stdin.
func readInput(ctx context.Context, positional []string, file, pageURL string) (string, error) {
	file = strings.TrimSpace(file)
	pageURL = strings.TrimSpace(pageURL)
	text := strings.TrimSpace(strings.Join(positional, " "))

	sources := 0
	for _, set := range []bool{file != "", pageURL != "", text != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return "", fmt.Errorf("provide text, --file or --url")
	case sources > 1:
		return "", fmt.Errorf("provide only one of text, --file or --url")
	}

	switch {
	case file != "":
		return reader.ReadFile(file)
	case pageURL != "":
		return reader.FetchText(ctx, pageURL)
	case text == "-":
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("stdin is not valid UTF-8")
		}
		return reader.CleanText(string(raw)), nil
	default:
		return text, nil
	}
}

func parseOutputFormat(raw, defaultFormat string, allowed ...string) (string, error) {
	format := strings.TrimSpace(strings.ToLower(raw))
	if format == "" {
		format = strings.TrimSpace(strings.ToLower(defaultFormat))
	}
	for _, candidate := range allowed {
		if format == candidate {
			return format, nil
		}
	}
	return "", fmt.Errorf("--format must be one of %s", strings.Join(allowed, ", "))
}

func truncateForTable(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if maxLen <= 0 {
		return trimmed
	}
	if utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}

	runes := []rune(trimmed)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func pointerStringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func formatUTCTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeTable(headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(writer, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func connectHistoryPool(timeout time.Duration, envLoader *cli.EnvLoader) (context.Context, context.CancelFunc, *db.Pool, error) {
	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		return nil, nil, nil, err
	}
	if !cfg.HasDatabase() {
		return nil, nil, nil, fmt.Errorf("DATABASE_URL is not set; history is disabled")
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	pool, err := db.NewPool(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return ctx, cancel, pool, nil
}
