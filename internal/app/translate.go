package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/textlens/internal/chunker"
	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/langdetect"
	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	from := fs.String("from", string(language.Auto), "Source language (ISO 639-1) or auto")
	to := fs.String("to", "", "Target language (ISO 639-1, for example: en)")
	format := fs.String("format", outputFormatText, "Output format: text or json")
	file := fs.String("file", "", "Read text from a plain-text or HTML file")
	pageURL := fs.String("url", "", "Fetch text from a web page")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatText, outputFormatText, outputFormatJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	targetLang := language.NormalizeCode(*to)
	if targetLang == "" || targetLang == language.Auto {
		fmt.Fprintln(os.Stderr, "--to is required and must be a valid language code")
		printTranslateUsage()
		return 2
	}
	requested := language.NormalizeCode(*from)
	if strings.TrimSpace(*from) != "" && requested == "" {
		fmt.Fprintf(os.Stderr, "--from must be auto or a valid language code, got %q\n", *from)
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	text, err := readInput(ctx, fs.Args(), *file, *pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		printTranslateUsage()
		return 2
	}

	sourceLang := langdetect.Resolve(requested, text)
	if sourceLang == "" {
		fmt.Fprintln(os.Stderr, "Could not detect the source language; pass --from")
		return 1
	}

	orchestrator, err := translation.NewOrchestratorFromConfig(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize translation: %v\n", err)
		return 1
	}

	result, err := orchestrator.Translate(ctx, translation.Request{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		var tooLong *chunker.UnitTooLongError
		switch {
		case errors.As(err, &tooLong):
			fmt.Fprintf(os.Stderr, "Sentence exceeds the token budget (%d > %d): %s\n", tooLong.Tokens, tooLong.Max, tooLong.Text)
		case errors.Is(err, translation.ErrUnsupportedLanguagePair):
			fmt.Fprintf(os.Stderr, "%v\n", err)
			if targets := orchestrator.Registry().Targets(sourceLang); len(targets) > 0 {
				fmt.Fprintf(os.Stderr, "Supported targets for %s: %s\n", sourceLang, joinCodes(targets))
			}
		default:
			logger.Error().Err(err).Str("source_lang", string(sourceLang)).Str("target_lang", string(targetLang)).Msg("translate failed")
			fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		}
		return 1
	}

	if outputFormat == outputFormatJSON {
		payload := map[string]any{
			"translated_text": result.Text,
			"source_lang":     sourceLang,
			"target_lang":     targetLang,
			"capability":      result.Capability,
			"units":           result.Units,
			"batches":         result.Batches,
			"latency_ms":      result.LatencyMs,
		}
		if err := printJSON(payload); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Println(result.Text)
	return 0
}

func joinCodes(codes []language.Code) string {
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, string(code))
	}
	return strings.Join(parts, ", ")
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  textlens translate --to <lang> [--from auto] [--format text|json] [--env .env] [--timeout 5m] <text>")
	fmt.Fprintln(os.Stderr, "  textlens translate --to <lang> [--from auto] --file <path>")
	fmt.Fprintln(os.Stderr, "  textlens translate --to <lang> [--from auto] --url <page_url>")
}
