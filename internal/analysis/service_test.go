package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/readability"
	"horse.fit/textlens/internal/sentiment"
)

type stubClassifier struct {
	result sentiment.Result
	err    error
	calls  int
}

func (c *stubClassifier) Classify(_ context.Context, _ string, _ language.Code) (sentiment.Result, error) {
	c.calls++
	return c.result, c.err
}

const englishSample = "The quick brown fox jumps over the lazy dog. It was a sunny day. Everyone enjoyed the remarkable weather."

func TestAnalyzeWithSentiment(t *testing.T) {
	t.Parallel()

	classifier := &stubClassifier{result: sentiment.Result{Label: sentiment.Positive, Score: 0.8}}
	svc := NewService(nil, classifier, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), Request{Text: englishSample, Lang: language.English})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Language != language.English || result.Detected {
		t.Fatalf("unexpected language resolution: %+v", result)
	}
	if result.Sentiment == nil || result.Sentiment.Label != sentiment.Positive || result.SentimentNote != "" {
		t.Fatalf("unexpected sentiment: %+v / %q", result.Sentiment, result.SentimentNote)
	}
	if result.Readability.Stats.Sentences != 3 || result.Readability.SMOG == 0 {
		t.Fatalf("unexpected readability report: %+v", result.Readability)
	}
	if len(result.Bands) != 4 {
		t.Fatalf("expected four bands, got %v", result.Bands)
	}
	if result.CategoryLabel == "" {
		t.Fatalf("expected category label")
	}
}

func TestAnalyzeSentimentFailureDegrades(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &stubClassifier{err: errors.New("model offline")}, zerolog.Nop())
	result, err := svc.Analyze(context.Background(), Request{Text: "Сегодня хорошая погода. Мы идём гулять.", Lang: language.Russian})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Sentiment != nil || result.SentimentNote != NoteSentimentFailed {
		t.Fatalf("expected degraded sentiment, got %+v / %q", result.Sentiment, result.SentimentNote)
	}
}

func TestAnalyzeKazakhSkipsSentiment(t *testing.T) {
	t.Parallel()

	classifier := &stubClassifier{}
	svc := NewService(nil, classifier, zerolog.Nop())
	result, err := svc.Analyze(context.Background(), Request{Text: "Бала мектепке барды.", Lang: language.Kazakh})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if classifier.calls != 0 || result.SentimentNote != NoteSentimentUnsupported {
		t.Fatalf("expected sentiment to be skipped, got %d calls / %q", classifier.calls, result.SentimentNote)
	}
	if result.CategoryLabel != result.Readability.Category.Label(language.Kazakh) {
		t.Fatalf("expected kazakh category label, got %q", result.CategoryLabel)
	}
}

func TestAnalyzeDetectsLanguage(t *testing.T) {
	t.Parallel()

	svc := NewService(readability.NewEngine(nil), nil, zerolog.Nop())
	result, err := svc.Analyze(context.Background(), Request{Text: englishSample, Lang: language.Auto})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Language != language.English || !result.Detected {
		t.Fatalf("expected detected english, got %+v", result)
	}
	if result.SentimentNote != NoteSentimentDisabled {
		t.Fatalf("unexpected sentiment note: %q", result.SentimentNote)
	}
}

func TestAnalyzeRejectsEmptyAndUndetectable(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil, zerolog.Nop())
	if _, err := svc.Analyze(context.Background(), Request{Text: "  "}); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), Request{Text: "12 34 56"}); !errors.Is(err, ErrLanguageUndetected) {
		t.Fatalf("expected ErrLanguageUndetected, got %v", err)
	}
}
