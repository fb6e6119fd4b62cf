package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/textlens/internal/analysis"
	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/readability"
)

func runReadability(args []string) int {
	fs := flag.NewFlagSet("readability", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	lang := fs.String("lang", string(language.Auto), "Text language: auto, ru, en or kk")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	file := fs.String("file", "", "Read text from a plain-text or HTML file")
	pageURL := fs.String("url", "", "Fetch text from a web page")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	requested := language.NormalizeCode(*lang)
	if requested != "" && requested != language.Auto && !language.IsReadability(requested) {
		fmt.Fprintf(os.Stderr, "--lang must be auto, ru, en or kk, got %q\n", *lang)
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
		return 2
	}

	service, err := newAnalysisService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize readability engine: %v\n", err)
		return 1
	}

	result, err := service.Analyze(ctx, analysis.Request{Text: text, Lang: requested})
	if err != nil {
		if errors.Is(err, analysis.ErrLanguageUndetected) {
			fmt.Fprintln(os.Stderr, "Could not detect a supported language; pass --lang ru, en or kk")
			return 1
		}
		fmt.Fprintf(os.Stderr, "Readability analysis failed: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	if err := writeTable([]string{"metric", "value", "band"}, readabilityRows(result)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render readability table: %v\n", err)
		return 1
	}
	return 0
}

func readabilityRows(result *analysis.Result) [][]string {
	report := result.Readability
	languageValue := string(result.Language)
	if result.Detected {
		languageValue += " (detected)"
	}

	rows := [][]string{
		{"language", languageValue, ""},
		{"sentences", fmt.Sprintf("%d", report.Stats.Sentences), ""},
		{"words", fmt.Sprintf("%d", report.Stats.Words), ""},
		{"syllables", fmt.Sprintf("%d", report.Stats.Syllables), ""},
		{"complex_words", fmt.Sprintf("%d", report.Stats.ComplexWords), ""},
	}
	for _, index := range []struct {
		name  readability.Index
		score float64
	}{
		{name: readability.IndexFleschReadingEase, score: report.FleschReadingEase},
		{name: readability.IndexFleschKincaidGrade, score: report.FleschKincaidGrade},
		{name: readability.IndexGunningFog, score: report.GunningFog},
		{name: readability.IndexSMOG, score: report.SMOG},
	} {
		rows = append(rows, []string{string(index.name), fmt.Sprintf("%.2f", index.score), string(result.Bands[index.name])})
	}
	rows = append(rows, []string{"category", string(report.Category), result.CategoryLabel})

	switch {
	case result.Sentiment != nil:
		rows = append(rows, []string{"sentiment", string(result.Sentiment.Label), fmt.Sprintf("%.2f", result.Sentiment.Score)})
	case strings.TrimSpace(result.SentimentNote) != "":
		rows = append(rows, []string{"sentiment", "-", result.SentimentNote})
	}
	return rows
}
