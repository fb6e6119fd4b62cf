package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"horse.fit/textlens/internal/cli"
	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/translation"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "languages does not accept positional arguments")
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

	registry, err := translation.NewRegistryFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize translation: %v\n", err)
		return 1
	}

	readabilityOptions := language.Options(language.Readability())
	pairOptions := translation.PairOptions(registry)

	if outputFormat == outputFormatJSON {
		if err := printJSON(map[string]any{
			"readability": readabilityOptions,
			"translation": pairOptions,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	readabilityRows := make([][]string, 0, len(readabilityOptions))
	for _, option := range readabilityOptions {
		readabilityRows = append(readabilityRows, []string{option.Code, option.Label, option.Native})
	}
	if err := writeTable([]string{"readability", "label", "native"}, readabilityRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render language table: %v\n", err)
		return 1
	}

	fmt.Println()
	pairRows := make([][]string, 0, len(pairOptions))
	for _, option := range pairOptions {
		targets := make([]string, 0, len(option.Targets))
		for _, target := range option.Targets {
			targets = append(targets, target.Code)
		}
		pairRows = append(pairRows, []string{option.Source.Code, strings.Join(targets, ", "), cfg.Provider()})
	}
	if err := writeTable([]string{"source", "targets", "provider"}, pairRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render pair table: %v\n", err)
		return 1
	}
	return 0
}
