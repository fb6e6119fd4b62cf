package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	HistoryKindReadability = "readability"
	HistoryKindTranslation = "translation"

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// HistoryStore records completed runs and lists recent ones.
type HistoryStore interface {
	RecordReadabilityRun(ctx context.Context, run *ReadabilityRun) error
	RecordTranslationRun(ctx context.Context, run *TranslationRun) error
	ListHistory(ctx context.Context, kind string, limit int) ([]HistoryEntry, error)
	Ping(ctx context.Context) error
}

// HistoryEntry is one row of the merged history listing.
type HistoryEntry struct {
	Kind       string    `json:"kind"`
	RunUUID    string    `json:"run_uuid"`
	Language   string    `json:"language"`
	TargetLang *string   `json:"target_lang,omitempty"`
	Summary    string    `json:"summary"`
	Preview    string    `json:"preview"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *Pool) RecordReadabilityRun(ctx context.Context, run *ReadabilityRun) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if run == nil {
		return fmt.Errorf("readability run is nil")
	}
	if run.RunUUID == uuid.Nil {
		run.RunUUID = uuid.New()
	}
	if err := p.gdb.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("insert readability run: %w", err)
	}
	return nil
}

func (p *Pool) RecordTranslationRun(ctx context.Context, run *TranslationRun) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if run == nil {
		return fmt.Errorf("translation run is nil")
	}
	if run.RunUUID == uuid.Nil {
		run.RunUUID = uuid.New()
	}
	if strings.TrimSpace(run.Status) == "" {
		run.Status = TranslationStatusOK
	}
	if err := p.gdb.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("insert translation run: %w", err)
	}
	return nil
}

// ListHistory returns the most recent runs of kind, or of both kinds when kind
// is blank, newest first.
func (p *Pool) ListHistory(ctx context.Context, kind string, limit int) ([]HistoryEntry, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	kind, err := NormalizeHistoryKind(kind)
	if err != nil {
		return nil, err
	}
	limit = NormalizeHistoryLimit(limit)

	const q = `
SELECT kind, run_uuid, language, target_lang, summary, preview, created_at
FROM (
	SELECT
		'readability' AS kind,
		r.run_uuid::text AS run_uuid,
		r.language,
		NULL::text AS target_lang,
		r.category || ' (FRE ' || to_char(r.flesch_reading_ease, 'FM990.00') || ')' AS summary,
		r.text_preview AS preview,
		r.created_at
	FROM textlens.readability_runs r
	UNION ALL
	SELECT
		'translation' AS kind,
		t.run_uuid::text AS run_uuid,
		t.source_lang AS language,
		t.target_lang,
		t.status || ' via ' || t.capability AS summary,
		t.source_preview AS preview,
		t.created_at
	FROM textlens.translation_runs t
) history
WHERE ($1 = '' OR kind = $1)
ORDER BY created_at DESC
LIMIT $2
`

	rows, err := p.Query(ctx, q, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(
			&entry.Kind,
			&entry.RunUUID,
			&entry.Language,
			&entry.TargetLang,
			&entry.Summary,
			&entry.Preview,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}

// CountRuns returns the number of stored runs per kind.
func (p *Pool) CountRuns(ctx context.Context) (map[string]int64, error) {
	const q = `
SELECT
	(SELECT COUNT(*) FROM textlens.readability_runs),
	(SELECT COUNT(*) FROM textlens.translation_runs)
`
	var readabilityRuns, translationRuns int64
	if err := p.QueryRow(ctx, q).Scan(&readabilityRuns, &translationRuns); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	return map[string]int64{
		HistoryKindReadability: readabilityRuns,
		HistoryKindTranslation: translationRuns,
	}, nil
}

// NormalizeHistoryKind accepts "", "readability" or "translation".
func NormalizeHistoryKind(raw string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(raw))
	switch kind {
	case "", HistoryKindReadability, HistoryKindTranslation:
		return kind, nil
	default:
		return "", fmt.Errorf("history kind must be %q or %q", HistoryKindReadability, HistoryKindTranslation)
	}
}

// NormalizeHistoryLimit clamps limit into [1, MaxHistoryLimit], defaulting
// non-positive values.
func NormalizeHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return min(limit, MaxHistoryLimit)
}
