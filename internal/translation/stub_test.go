package translation

import (
	"context"
	"strings"
)

type stubCapability struct {
	name      string
	calls     [][]string
	err       error
	dropLast  bool
	translate func(string) string
}

func (c *stubCapability) Name() string {
	if c.name == "" {
		return "stub"
	}
	return c.name
}

func (c *stubCapability) TranslateBatch(_ context.Context, batch []string) ([]string, error) {
	c.calls = append(c.calls, append([]string(nil), batch...))
	if c.err != nil {
		return nil, c.err
	}

	out := make([]string, 0, len(batch))
	for _, unit := range batch {
		if c.translate != nil {
			out = append(out, c.translate(unit))
			continue
		}
		out = append(out, "<"+unit+">")
	}
	if c.dropLast && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func dictionary(entries map[string]string) func(string) string {
	return func(unit string) string {
		if translated, ok := entries[unit]; ok {
			return translated
		}
		return strings.ToUpper(unit)
	}
}
