// Package readability computes Flesch Reading Ease, Flesch-Kincaid Grade
// Level, Gunning Fog and SMOG for Russian, English and Kazakh text.
package readability

import (
	"math"

	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/syllable"
)

// coefficients holds the per-language Flesch constants.
//
//	FRE  = freBase - freASL*asl - freASW*asw
//	FKGL = fkglASL*asl + fkglASW*asw + fkglBase
type coefficients struct {
	freBase  float64
	freASL   float64
	freASW   float64
	fkglASL  float64
	fkglASW  float64
	fkglBase float64
}

var formulaTable = map[language.Code]coefficients{
	language.Russian: {freBase: 206.835, freASL: 1.3, freASW: 60.1, fkglASL: 0.5, fkglASW: 8.4, fkglBase: -15.59},
	language.English: {freBase: 206.835, freASL: 1.015, freASW: 84.6, fkglASL: 0.39, fkglASW: 11.8, fkglBase: -15.59},
	language.Kazakh:  {freBase: 206.835, freASL: 1.2, freASW: 70, fkglASL: 0.5, fkglASW: 9, fkglBase: -13},
}

// fallbackCoefficients is used for unrecognized languages; every term is zero
// so FRE and FKGL both evaluate to 0.
var fallbackCoefficients = coefficients{}

func coefficientsFor(lang language.Code) coefficients {
	if c, ok := formulaTable[lang]; ok {
		return c
	}
	return fallbackCoefficients
}

// Stats are the raw counts behind a report.
type Stats struct {
	Sentences    int `json:"sentences"`
	Words        int `json:"words"`
	Syllables    int `json:"syllables"`
	ComplexWords int `json:"complex_words"`
}

// ASL is words per sentence with both counts floored at 1.
func (s Stats) ASL() float64 {
	return float64(max(1, s.Words)) / float64(max(1, s.Sentences))
}

// ASW is syllables per word with the word count floored at 1.
func (s Stats) ASW() float64 {
	return float64(s.Syllables) / float64(max(1, s.Words))
}

// Report is the result of one analysis call.
type Report struct {
	Language           language.Code `json:"language"`
	FleschReadingEase  float64       `json:"flesch_reading_ease"`
	FleschKincaidGrade float64       `json:"flesch_kincaid_grade"`
	GunningFog         float64       `json:"gunning_fog"`
	SMOG               float64       `json:"smog"`
	Category           Category      `json:"category"`
	Stats              Stats         `json:"stats"`
}

// Engine computes readability indices. The zero value is not usable; build
// one with NewEngine.
type Engine struct {
	syllables *syllable.Estimator
}

// NewEngine returns an engine counting syllables with est, or with the
// built-in estimator when est is nil.
func NewEngine(est *syllable.Estimator) *Engine {
	if est == nil {
		est = syllable.Default()
	}
	return &Engine{syllables: est}
}

var defaultEngine = NewEngine(nil)

// Measure segments text and counts sentences, words, syllables and complex words.
func (e *Engine) Measure(text string, lang language.Code) Stats {
	sentences := SplitSentences(text, lang)
	words := Words(text)

	stats := Stats{
		Sentences: len(sentences),
		Words:     len(words),
	}
	for _, word := range words {
		n := e.syllables.Count(stripApostrophes(word), lang)
		stats.Syllables += n
		if n >= 3 {
			stats.ComplexWords++
		}
	}
	return stats
}

func (e *Engine) FleschReadingEase(text string, lang language.Code) float64 {
	return fleschReadingEase(e.Measure(text, lang), lang)
}

func (e *Engine) FleschKincaidGrade(text string, lang language.Code) float64 {
	return fleschKincaidGrade(e.Measure(text, lang), lang)
}

func (e *Engine) GunningFog(text string, lang language.Code) float64 {
	return gunningFog(e.Measure(text, lang))
}

func (e *Engine) SMOG(text string, lang language.Code) float64 {
	return smog(e.Measure(text, lang))
}

// Analyze computes every index in a single pass. Reports for unrecognized
// languages carry CategoryUnclassified since their Flesch scores are the
// neutral fallback rather than a measurement.
func (e *Engine) Analyze(text string, lang language.Code) Report {
	stats := e.Measure(text, lang)
	report := Report{
		Language:           lang,
		FleschReadingEase:  fleschReadingEase(stats, lang),
		FleschKincaidGrade: fleschKincaidGrade(stats, lang),
		GunningFog:         gunningFog(stats),
		SMOG:               smog(stats),
		Stats:              stats,
	}
	if language.IsReadability(lang) {
		report.Category = Classify(report.FleschReadingEase, report.FleschKincaidGrade, report.GunningFog, report.SMOG)
	} else {
		report.Category = CategoryUnclassified
	}
	return report
}

// FleschReadingEase scores text with the built-in syllable estimator.
func FleschReadingEase(text string, lang language.Code) float64 {
	return defaultEngine.FleschReadingEase(text, lang)
}

// FleschKincaidGrade scores text with the built-in syllable estimator.
func FleschKincaidGrade(text string, lang language.Code) float64 {
	return defaultEngine.FleschKincaidGrade(text, lang)
}

// GunningFog scores text with the built-in syllable estimator.
func GunningFog(text string, lang language.Code) float64 {
	return defaultEngine.GunningFog(text, lang)
}

// SMOG scores text with the built-in syllable estimator.
func SMOG(text string, lang language.Code) float64 {
	return defaultEngine.SMOG(text, lang)
}

func fleschReadingEase(s Stats, lang language.Code) float64 {
	c := coefficientsFor(lang)
	return c.freBase - c.freASL*s.ASL() - c.freASW*s.ASW()
}

func fleschKincaidGrade(s Stats, lang language.Code) float64 {
	c := coefficientsFor(lang)
	return c.fkglASL*s.ASL() + c.fkglASW*s.ASW() + c.fkglBase
}

func gunningFog(s Stats) float64 {
	percentComplex := float64(s.ComplexWords) / float64(max(1, s.Words)) * 100
	return 0.4 * (s.ASL() + percentComplex)
}

// smog is 0 below three sentences.
func smog(s Stats) float64 {
	if s.Sentences < 3 {
		return 0
	}
	return 1.0430*math.Sqrt(float64(s.ComplexWords)*(30/float64(s.Sentences))) + 3.1291
}
