package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "readability", "score":
		return runReadability(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "chunk":
		return runChunk(args[1:])
	case "detect":
		return runDetect(args[1:])
	case "languages":
		return runLanguages(args[1:])
	case "history":
		return runHistory(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "textlens CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  textlens <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  readability  Score text readability (ru, en, kk)")
	fmt.Fprintln(os.Stderr, "  score        Alias for readability")
	fmt.Fprintln(os.Stderr, "  translate    Translate text through the configured capability")
	fmt.Fprintln(os.Stderr, "  chunk        Show translation units and their token counts")
	fmt.Fprintln(os.Stderr, "  detect       Detect the readability language of text")
	fmt.Fprintln(os.Stderr, "  languages    List readability languages and translation pairs")
	fmt.Fprintln(os.Stderr, "  history      List recent runs (requires DATABASE_URL)")
	fmt.Fprintln(os.Stderr, "  serve        Start Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"textlens <command> -h\" for command-specific flags.")
}
