package readability

import (
	"math"
	"testing"
	"unicode/utf8"

	"horse.fit/textlens/internal/language"
	"horse.fit/textlens/internal/syllable"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// lengthHyphenator gives words of at least minLen runes two break points and
// every other word none.
func lengthHyphenator(minLen int) syllable.Hyphenator {
	return syllable.HyphenatorFunc(func(word string) []int {
		if utf8.RuneCountInString(word) >= minLen {
			return []int{1, 2}
		}
		return nil
	})
}

func stubEngine(minLen int) *Engine {
	h := lengthHyphenator(minLen)
	return NewEngine(syllable.NewEstimator(map[language.Code]syllable.Hyphenator{
		language.English: h,
		language.Russian: h,
	}))
}

func TestGunningFogTenWordsTwoComplex(t *testing.T) {
	t.Parallel()

	engine := stubEngine(9)
	text := "The remarkable cat saw a wonderful dog in the yard."

	stats := engine.Measure(text, language.English)
	if stats.Words != 10 || stats.Sentences != 1 || stats.ComplexWords != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if got := engine.GunningFog(text, language.English); !approxEqual(got, 12.0) {
		t.Fatalf("unexpected gunning fog: got %v want 12.0", got)
	}
}

func TestSMOGBelowThreeSentencesIsZero(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"Extraordinary circumstances.",
		"Extraordinary circumstances happen. Unbelievable consequences follow.",
	}
	for _, text := range texts {
		for _, lang := range []language.Code{language.English, language.Russian, language.Kazakh, "de"} {
			if got := SMOG(text, lang); got != 0 {
				t.Fatalf("SMOG(%q, %q) = %v, want 0", text, lang, got)
			}
		}
	}
}

func TestSMOGWithThreeSentences(t *testing.T) {
	t.Parallel()

	engine := stubEngine(7)
	text := "Alpha beta. Gamma delta. Epsilon zeta."

	want := 1.0430*math.Sqrt(1*30.0/3) + 3.1291
	if got := engine.SMOG(text, language.English); !approxEqual(got, want) {
		t.Fatalf("unexpected smog: got %v want %v", got, want)
	}
}

func TestFleschUnrecognizedLanguageIsZero(t *testing.T) {
	t.Parallel()

	texts := []string{"", "The cat sat on the mat.", "Кот сидит. Собака бежит."}
	for _, text := range texts {
		for _, lang := range []language.Code{"de", "", "xx"} {
			if got := FleschReadingEase(text, lang); got != 0 {
				t.Fatalf("FleschReadingEase(%q, %q) = %v, want 0", text, lang, got)
			}
			if got := FleschKincaidGrade(text, lang); got != 0 {
				t.Fatalf("FleschKincaidGrade(%q, %q) = %v, want 0", text, lang, got)
			}
		}
	}
}

func TestFleschEnglishCoefficients(t *testing.T) {
	t.Parallel()

	engine := stubEngine(100)
	text := "The cat sat. The dog ran."

	asl, asw := 3.0, 1.0
	if got, want := engine.FleschReadingEase(text, language.English), 206.835-1.015*asl-84.6*asw; !approxEqual(got, want) {
		t.Fatalf("unexpected FRE: got %v want %v", got, want)
	}
	if got, want := engine.FleschKincaidGrade(text, language.English), 0.39*asl+11.8*asw-15.59; !approxEqual(got, want) {
		t.Fatalf("unexpected FKGL: got %v want %v", got, want)
	}
}

func TestFleschRussianCoefficients(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	text := "Кот сидит. Собака бежит."

	stats := engine.Measure(text, language.Russian)
	if stats.Sentences != 2 || stats.Words != 4 || stats.Syllables != 8 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	asl, asw := 2.0, 2.0
	if got, want := engine.FleschReadingEase(text, language.Russian), 206.835-1.3*asl-60.1*asw; !approxEqual(got, want) {
		t.Fatalf("unexpected FRE: got %v want %v", got, want)
	}
	if got, want := engine.FleschKincaidGrade(text, language.Russian), 0.5*asl+8.4*asw-15.59; !approxEqual(got, want) {
		t.Fatalf("unexpected FKGL: got %v want %v", got, want)
	}
}

func TestFleschKazakhCoefficients(t *testing.T) {
	t.Parallel()

	text := "Бала мектепке барды."
	stats := NewEngine(nil).Measure(text, language.Kazakh)
	if stats.Sentences != 1 || stats.Words != 3 || stats.Syllables != 7 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	asl, asw := 3.0, 7.0/3.0
	if got, want := FleschReadingEase(text, language.Kazakh), 206.835-1.2*asl-70*asw; !approxEqual(got, want) {
		t.Fatalf("unexpected FRE: got %v want %v", got, want)
	}
	if got, want := FleschKincaidGrade(text, language.Kazakh), 0.5*asl+9*asw-13; !approxEqual(got, want) {
		t.Fatalf("unexpected FKGL: got %v want %v", got, want)
	}
}

func TestEmptyTextDoesNotDivideByZero(t *testing.T) {
	t.Parallel()

	for _, lang := range []language.Code{language.English, language.Russian, language.Kazakh} {
		report := NewEngine(nil).Analyze("   ", lang)
		for name, v := range map[string]float64{
			"fre":  report.FleschReadingEase,
			"fkgl": report.FleschKincaidGrade,
			"fog":  report.GunningFog,
			"smog": report.SMOG,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s for empty %s text is not finite: %v", name, lang, v)
			}
		}
	}
}

func TestAnalyzeMatchesIndividualFunctions(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)
	text := "Readability formulas estimate difficulty. Short sentences help. Long, convoluted, multisyllabic constructions hinder comprehension considerably."

	report := engine.Analyze(text, language.English)
	if !approxEqual(report.FleschReadingEase, engine.FleschReadingEase(text, language.English)) {
		t.Fatalf("FRE mismatch")
	}
	if !approxEqual(report.FleschKincaidGrade, engine.FleschKincaidGrade(text, language.English)) {
		t.Fatalf("FKGL mismatch")
	}
	if !approxEqual(report.GunningFog, engine.GunningFog(text, language.English)) {
		t.Fatalf("fog mismatch")
	}
	if !approxEqual(report.SMOG, engine.SMOG(text, language.English)) {
		t.Fatalf("smog mismatch")
	}
	if report.SMOG == 0 {
		t.Fatalf("expected non-zero smog for three sentences")
	}
	if report.Category.Rank() < 0 {
		t.Fatalf("expected ranked category, got %q", report.Category)
	}
}

func TestAnalyzeUnrecognizedLanguageIsUnclassified(t *testing.T) {
	t.Parallel()

	report := NewEngine(nil).Analyze("Der Hund bellt.", "de")
	if report.Category != CategoryUnclassified {
		t.Fatalf("unexpected category: %q", report.Category)
	}
	if report.FleschReadingEase != 0 || report.FleschKincaidGrade != 0 {
		t.Fatalf("expected zero flesch scores, got %+v", report)
	}
}
