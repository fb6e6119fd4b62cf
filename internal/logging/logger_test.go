package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want zerolog.Level
	}{
		{raw: "", want: zerolog.InfoLevel},
		{raw: " DEBUG ", want: zerolog.DebugLevel},
		{raw: "warning", want: zerolog.WarnLevel},
		{raw: "error", want: zerolog.ErrorLevel},
		{raw: "disabled", want: zerolog.Disabled},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil || !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Fatalf("expected LOG_LEVEL error, got %v", err)
	}
}

func TestNewLoggerWritesJSONWithService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, "production", zerolog.InfoLevel)
	logger.Debug().Msg("hidden")
	logger.Info().Str("pair", "ru>en").Msg("translation complete")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %q", buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != "textlens" || entry["pair"] != "ru>en" || entry["message"] != "translation complete" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestNewLoggerLocalUsesConsoleWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, "local", zerolog.InfoLevel)
	logger.Info().Msg("ready")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") || !strings.Contains(out, "ready") {
		t.Fatalf("expected console output, got %q", out)
	}
}
