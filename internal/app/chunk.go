package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/textlens/internal/chunker"
	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/tokenizer"
)

func runChunk(args []string) int {
	fs := flag.NewFlagSet("chunk", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	maxTokens := fs.Int("max-tokens", 0, "Per-unit token budget (default MAX_UNIT_TOKENS)")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	file := fs.String("file", "", "Read text from a plain-text or HTML file")
	pageURL := fs.String("url", "", "Fetch text from a web page")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *maxTokens < 0 {
		fmt.Fprintln(os.Stderr, "--max-tokens must be >= 0")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	cfg, _, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	text, err := readInput(ctx, fs.Args(), *file, *pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 2
	}

	counter, err := tokenizer.New(cfg.TokenizerPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load tokenizer: %v\n", err)
		return 1
	}
	budget := cfg.MaxUnitTokens
	if *maxTokens > 0 {
		budget = *maxTokens
	}

	ch := chunker.New(counter, budget)
	units, err := ch.Chunk(text)
	if err != nil {
		var tooLong *chunker.UnitTooLongError
		if errors.As(err, &tooLong) {
			fmt.Fprintf(os.Stderr, "Sentence exceeds the token budget (%d > %d): %s\n", tooLong.Tokens, tooLong.Max, tooLong.Text)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Chunking failed: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if units == nil {
			units = []chunker.Unit{}
		}
		if err := printJSON(map[string]any{
			"max_tokens": ch.MaxTokens(),
			"units":      units,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	rows := make([][]string, 0, len(units))
	for i, unit := range units {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", unit.Tokens),
			truncateForTable(unit.Text, 96),
		})
	}
	if err := writeTable([]string{"#", "tokens", "text"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render chunk table: %v\n", err)
		return 1
	}
	return 0
}
