package db

import (
	"time"

	"github.com/google/uuid"
)

// ReadabilityRun maps textlens.readability_runs.
type ReadabilityRun struct {
	RunID              int64     `gorm:"column:run_id;primaryKey;autoIncrement"`
	RunUUID            uuid.UUID `gorm:"column:run_uuid;type:uuid;not null;unique"`
	Language           string    `gorm:"column:language;type:text;not null"`
	Detected           bool      `gorm:"column:detected;type:boolean;not null;default:false"`
	TextPreview        string    `gorm:"column:text_preview;type:text;not null"`
	TextChars          int       `gorm:"column:text_chars;type:integer;not null"`
	Sentences          int       `gorm:"column:sentences;type:integer;not null"`
	Words              int       `gorm:"column:words;type:integer;not null"`
	Syllables          int       `gorm:"column:syllables;type:integer;not null"`
	ComplexWords       int       `gorm:"column:complex_words;type:integer;not null"`
	FleschReadingEase  float64   `gorm:"column:flesch_reading_ease;type:double precision;not null"`
	FleschKincaidGrade float64   `gorm:"column:flesch_kincaid_grade;type:double precision;not null"`
	GunningFog         float64   `gorm:"column:gunning_fog;type:double precision;not null"`
	SMOG               float64   `gorm:"column:smog;type:double precision;not null"`
	Category           string    `gorm:"column:category;type:text;not null"`
	SentimentLabel     *string   `gorm:"column:sentiment_label;type:text"`
	SentimentScore     *float64  `gorm:"column:sentiment_score;type:double precision"`
	CreatedAt          time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ReadabilityRun) TableName() string { return "textlens.readability_runs" }

// TranslationRun maps textlens.translation_runs.
type TranslationRun struct {
	RunID          int64     `gorm:"column:run_id;primaryKey;autoIncrement"`
	RunUUID        uuid.UUID `gorm:"column:run_uuid;type:uuid;not null;unique"`
	SourceLang     string    `gorm:"column:source_lang;type:text;not null"`
	TargetLang     string    `gorm:"column:target_lang;type:text;not null"`
	Capability     string    `gorm:"column:capability;type:text;not null;default:''"`
	Status         string    `gorm:"column:status;type:text;not null"`
	SourcePreview  string    `gorm:"column:source_preview;type:text;not null"`
	TranslatedText string    `gorm:"column:translated_text;type:text;not null;default:''"`
	Units          int       `gorm:"column:units;type:integer;not null;default:0"`
	Batches        int       `gorm:"column:batches;type:integer;not null;default:0"`
	LatencyMS      int64     `gorm:"column:latency_ms;type:bigint;not null;default:0"`
	ErrorMessage   *string   `gorm:"column:error_message;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (TranslationRun) TableName() string { return "textlens.translation_runs" }

const (
	TranslationStatusOK     = "ok"
	TranslationStatusFailed = "failed"
)

func autoMigrateModels() []any {
	return []any{
		&ReadabilityRun{},
		&TranslationRun{},
	}
}
