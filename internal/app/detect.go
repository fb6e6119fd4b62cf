package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/textlens/internal/langdetect"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	file := fs.String("file", "", "Read text from a plain-text or HTML file")
	pageURL := fs.String("url", "", "Fetch text from a web page")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	text, err := readInput(ctx, fs.Args(), *file, *pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 2
	}

	code := langdetect.Detect(text)
	if code == "" {
		fmt.Println("unknown")
		return 1
	}
	fmt.Println(code)
	return 0
}
