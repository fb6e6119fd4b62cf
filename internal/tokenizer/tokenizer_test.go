package tokenizer

import (
	"strings"
	"testing"
)

func TestEstimatorCountsLatinAndCyrillic(t *testing.T) {
	t.Parallel()

	est := NewEstimator()
	cases := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "   ", want: 0},
		{text: "a", want: 1},
		{text: "hello world!", want: 3},
		{text: "Кот сидит", want: 5},
	}
	for _, tc := range cases {
		got, err := est.Count(tc.text)
		if err != nil {
			t.Fatalf("Count(%q) returned error: %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("Count(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestEstimatorGrowsWithText(t *testing.T) {
	t.Parallel()

	est := NewEstimator()
	short, _ := est.Count(strings.Repeat("слово ", 10))
	long, _ := est.Count(strings.Repeat("слово ", 100))
	if long <= short {
		t.Fatalf("expected longer text to count more tokens: short=%d long=%d", short, long)
	}
}

func TestNewWithoutPathUsesEstimator(t *testing.T) {
	t.Parallel()

	counter, err := New("  ")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := counter.(*Estimator); !ok {
		t.Fatalf("expected *Estimator, got %T", counter)
	}
}

func TestLoadHuggingFaceMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadHuggingFace(""); err == nil {
		t.Fatalf("expected error for blank path")
	}
	if _, err := New(t.TempDir() + "/missing-tokenizer.json"); err == nil {
		t.Fatalf("expected error for missing tokenizer file")
	}
}
