package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/db"
)

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	kind := fs.String("kind", "", "Run kind: readability or translation (default both)")
	limit := fs.Int("limit", db.DefaultHistoryLimit, "Maximum rows to show")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "history does not accept positional arguments")
		return 2
	}

	normalizedKind, err := db.NormalizeHistoryKind(*kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid kind: %v\n", err)
		return 2
	}
	if *limit < 1 || *limit > db.MaxHistoryLimit {
		fmt.Fprintf(os.Stderr, "--limit must be between 1 and %d\n", db.MaxHistoryLimit)
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable, outputFormatTable, outputFormatJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	ctx, cancel, pool, err := connectHistoryPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	counts, err := pool.CountRuns(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count runs: %v\n", err)
		return 1
	}
	entries, err := pool.ListHistory(ctx, normalizedKind, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list history: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if entries == nil {
			entries = []db.HistoryEntry{}
		}
		if err := printJSON(map[string]any{
			"totals": counts,
			"items":  entries,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		lang := entry.Language
		if target := pointerStringOrEmpty(entry.TargetLang); target != "" {
			lang += ">" + target
		}
		rows = append(rows, []string{
			formatUTCTimestamp(entry.CreatedAt),
			entry.Kind,
			lang,
			entry.Summary,
			truncateForTable(entry.Preview, 60),
		})
	}
	if err := writeTable([]string{"created_at", "kind", "lang", "summary", "preview"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render history table: %v\n", err)
		return 1
	}

	fmt.Println()
	fmt.Printf("readability_runs=%d translation_runs=%d\n", counts[db.HistoryKindReadability], counts[db.HistoryKindTranslation])
	return 0
}
