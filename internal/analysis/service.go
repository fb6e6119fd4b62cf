// Package analysis combines readability scoring with optional sentiment.
package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/textlens/internal/langdetect"
	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/readability"
	"horse.fit/textlens/internal/sentiment"
)

var (
	ErrEmptyText          = errors.New("text is required")
	ErrLanguageUndetected = errors.New("could not detect a supported language")
)

const (
	NoteSentimentDisabled    = "sentiment analysis is disabled"
	NoteSentimentUnsupported = "sentiment analysis is not available for this language"
	NoteSentimentFailed      = "sentiment analysis is temporarily unavailable"
)

type Request struct {
	Text string
	// Lang may be "auto" or blank to detect the language.
	Lang language.Code
}

type Result struct {
	Language      language.Code                          `json:"language"`
	Detected      bool                                   `json:"detected"`
	Readability   readability.Report                     `json:"readability"`
	CategoryLabel string                                 `json:"category_label"`
	Bands         map[readability.Index]readability.Band `json:"bands"`
	Sentiment     *sentiment.Result                      `json:"sentiment,omitempty"`
	SentimentNote string                                 `json:"sentiment_note,omitempty"`
}

type Service struct {
	engine     *readability.Engine
	classifier sentiment.Classifier
	logger     zerolog.Logger
}

// NewService builds an analysis service. A nil classifier disables sentiment.
func NewService(engine *readability.Engine, classifier sentiment.Classifier, logger zerolog.Logger) *Service {
	if engine == nil {
		engine = readability.NewEngine(nil)
	}
	return &Service{engine: engine, classifier: classifier, logger: logger}
}

// Analyze scores req.Text. Sentiment failures never fail the analysis; they
// are reported through SentimentNote.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	requested := language.NormalizeCode(string(req.Lang))
	lang := langdetect.Resolve(requested, text)
	if lang == "" {
		return nil, ErrLanguageUndetected
	}

	report := s.engine.Analyze(text, lang)
	result := &Result{
		Language:      lang,
		Detected:      requested == "" || requested == language.Auto,
		Readability:   report,
		CategoryLabel: report.Category.Label(lang),
		Bands:         report.Bands(),
	}

	switch {
	case s.classifier == nil:
		result.SentimentNote = NoteSentimentDisabled
	case !sentiment.Supports(lang):
		result.SentimentNote = NoteSentimentUnsupported
	default:
		sent, err := s.classifier.Classify(ctx, text, lang)
		if err != nil {
			s.logger.Warn().Err(err).Str("lang", string(lang)).Msg("sentiment analysis failed")
			result.SentimentNote = NoteSentimentFailed
			break
		}
		result.Sentiment = &sent
	}

	return result, nil
}
