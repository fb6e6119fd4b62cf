package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"horse.fit/textlens/internal/analysis"
	"horse.fit/textlens/internal/chunker"
	"horse.fit/textlens/internal/db"
	"horse.fit/textlens/internal/langdetect"
	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/payloadschema"
	"horse.fit/textlens/internal/reader"
	"horse.fit/textlens/internal/translation"
)

const historyPreviewChars = 280

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	Detected       bool   `json:"detected"`
	Capability     string `json:"capability"`
	Units          int    `json:"units"`
	Batches        int    `json:"batches"`
	LatencyMs      int64  `json:"latency_ms"`
}

func (s *Server) handleHealth(c echo.Context) error {
	history := "disabled"
	if s.deps.History != nil {
		history = "ok"
		if err := s.deps.History.Ping(c.Request().Context()); err != nil {
			s.logger.Warn().Err(err).Msg("history database ping failed")
			history = "unavailable"
		}
	}

	return success(c, map[string]any{
		"service": "textlens",
		"time":    time.Now().UTC(),
		"history": history,
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"readability": language.Options(language.Readability()),
		"translation": translation.PairOptions(s.deps.Translator.Registry()),
	})
}

func (s *Server) handleReadability(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	req, err := payloadschema.ValidateReadabilityRequest(body)
	if err != nil {
		return s.failPayload(c, err)
	}

	ctx := c.Request().Context()
	result, err := s.deps.Analysis.Analyze(ctx, analysis.Request{
		Text: req.Text,
		Lang: language.Code(req.Lang),
	})
	switch {
	case errors.Is(err, analysis.ErrEmptyText):
		return failValidation(c, map[string]string{"text": err.Error()})
	case errors.Is(err, analysis.ErrLanguageUndetected):
		return fail(c, http.StatusUnprocessableEntity, "Could not detect a supported language; pass lang explicitly", nil)
	case err != nil:
		s.logger.Error().Err(err).Msg("readability analysis failed")
		return internalError(c, "Failed to analyze text")
	}

	s.recordReadability(context.WithoutCancel(ctx), req.Text, result)
	return success(c, result)
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	req, err := payloadschema.ValidateTranslateRequest(body)
	if err != nil {
		return s.failPayload(c, err)
	}

	requested := language.NormalizeCode(req.SourceLang)
	src := langdetect.Resolve(requested, req.Text)
	if src == "" {
		return fail(c, http.StatusUnprocessableEntity, "Could not detect the source language; pass source_lang explicitly", nil)
	}
	tgt := language.NormalizeCode(req.TargetLang)

	ctx := c.Request().Context()
	result, err := s.deps.Translator.Translate(ctx, translation.Request{
		Text:       req.Text,
		SourceLang: src,
		TargetLang: tgt,
	})
	if err != nil {
		s.recordTranslation(context.WithoutCancel(ctx), req.Text, src, tgt, nil, err)
		return s.failTranslation(c, src, tgt, err)
	}

	s.recordTranslation(context.WithoutCancel(ctx), req.Text, src, tgt, result, nil)
	return success(c, translateResponse{
		TranslatedText: result.Text,
		SourceLang:     string(src),
		TargetLang:     string(tgt),
		Detected:       requested == "" || requested == language.Auto,
		Capability:     result.Capability,
		Units:          result.Units,
		Batches:        result.Batches,
		LatencyMs:      result.LatencyMs,
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	kind, err := db.NormalizeHistoryKind(c.QueryParam("kind"))
	if err != nil {
		return failValidation(c, map[string]string{"kind": err.Error()})
	}
	limit, err := parsePositiveInt(c.QueryParam("limit"), db.DefaultHistoryLimit, 1, db.MaxHistoryLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	items, err := s.deps.History.ListHistory(c.Request().Context(), kind, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("query history failed")
		return internalError(c, "Failed to load history")
	}
	if items == nil {
		items = []db.HistoryEntry{}
	}

	return success(c, map[string]any{
		"items": items,
		"kind":  kind,
		"limit": limit,
	})
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}
	return body, nil
}

func (s *Server) failPayload(c echo.Context, err error) error {
	if errors.Is(err, payloadschema.ErrInvalidPayload) {
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	}
	s.logger.Error().Err(err).Msg("payload validation failed")
	return internalError(c, "Failed to validate request")
}

func (s *Server) failTranslation(c echo.Context, src, tgt language.Code, err error) error {
	var tooLong *chunker.UnitTooLongError
	switch {
	case errors.As(err, &tooLong):
		return fail(c, http.StatusUnprocessableEntity, "A sentence exceeds the translation token budget", map[string]any{
			"unit":       tooLong.Text,
			"tokens":     tooLong.Tokens,
			"max_tokens": tooLong.Max,
		})
	case errors.Is(err, translation.ErrUnsupportedLanguagePair):
		targets := s.deps.Translator.Registry().Targets(src)
		if targets == nil {
			targets = []language.Code{}
		}
		return fail(c, http.StatusUnprocessableEntity, err.Error(), map[string]any{
			"source_lang":       src,
			"target_lang":       tgt,
			"supported_targets": targets,
		})
	case errors.Is(err, translation.ErrBatchLengthMismatch):
		s.logger.Error().Err(err).Str("source_lang", string(src)).Str("target_lang", string(tgt)).Msg("translation batch mismatch")
		return internalError(c, "Translation returned an incomplete batch")
	case errors.Is(err, context.DeadlineExceeded):
		// Capability timeouts are wrapped in CapabilityError too.
		s.logger.Warn().Err(err).Str("source_lang", string(src)).Str("target_lang", string(tgt)).Msg("translation timed out")
		return serverError(c, http.StatusGatewayTimeout, "Translation timed out")
	case errors.Is(err, translation.ErrCapabilityInvocation):
		s.logger.Error().Err(err).Str("source_lang", string(src)).Str("target_lang", string(tgt)).Msg("translation capability failed")
		return serverError(c, http.StatusBadGateway, "Translation service failed")
	default:
		s.logger.Error().Err(err).Msg("translate failed")
		return internalError(c, "Failed to translate text")
	}
}

// History writes never change the response; failures are only logged.
func (s *Server) recordReadability(ctx context.Context, text string, result *analysis.Result) {
	if s.deps.History == nil || result == nil {
		return
	}

	preview, _ := reader.TruncateText(text, historyPreviewChars)
	report := result.Readability
	run := &db.ReadabilityRun{
		Language:           string(result.Language),
		Detected:           result.Detected,
		TextPreview:        preview,
		TextChars:          utf8.RuneCountInString(text),
		Sentences:          report.Stats.Sentences,
		Words:              report.Stats.Words,
		Syllables:          report.Stats.Syllables,
		ComplexWords:       report.Stats.ComplexWords,
		FleschReadingEase:  report.FleschReadingEase,
		FleschKincaidGrade: report.FleschKincaidGrade,
		GunningFog:         report.GunningFog,
		SMOG:               report.SMOG,
		Category:           string(report.Category),
	}
	if result.Sentiment != nil {
		label := string(result.Sentiment.Label)
		score := result.Sentiment.Score
		run.SentimentLabel = &label
		run.SentimentScore = &score
	}

	if err := s.deps.History.RecordReadabilityRun(ctx, run); err != nil {
		s.logger.Warn().Err(err).Msg("record readability run failed")
	}
}

func (s *Server) recordTranslation(ctx context.Context, text string, src, tgt language.Code, result *translation.Result, failure error) {
	if s.deps.History == nil {
		return
	}

	preview, _ := reader.TruncateText(text, historyPreviewChars)
	run := &db.TranslationRun{
		SourceLang:    string(src),
		TargetLang:    string(tgt),
		Status:        db.TranslationStatusOK,
		SourcePreview: preview,
	}
	if result != nil {
		run.Capability = result.Capability
		run.TranslatedText = result.Text
		run.Units = result.Units
		run.Batches = result.Batches
		run.LatencyMS = result.LatencyMs
	}
	if failure != nil {
		message := failure.Error()
		run.Status = db.TranslationStatusFailed
		run.ErrorMessage = &message
	}

	if err := s.deps.History.RecordTranslationRun(ctx, run); err != nil {
		s.logger.Warn().Err(err).Msg("record translation run failed")
	}
}
