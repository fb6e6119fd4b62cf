package readability

import (
	"reflect"
	"testing"

	"horse.fit/textlens/internal/language"
)

func TestSplitSentencesEnglish(t *testing.T) {
	t.Parallel()

	got := SplitSentences("Dr. Smith arrived. He was late! Was he? Yes.", language.English)
	want := []string{"Dr. Smith arrived.", "He was late!", "Was he?", "Yes."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sentences:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestSplitSentencesKeepsDecimals(t *testing.T) {
	t.Parallel()

	got := SplitSentences("The value is 3.14 today.", language.English)
	if len(got) != 1 {
		t.Fatalf("expected one sentence, got %q", got)
	}
}

func TestSplitSentencesRussianAbbreviations(t *testing.T) {
	t.Parallel()

	got := SplitSentences("Это было в 2020 г. в Москве. Потом т.е. позже.", language.Russian)
	want := []string{"Это было в 2020 г. в Москве.", "Потом т.е. позже."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sentences:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestSplitSentencesRussianInitials(t *testing.T) {
	t.Parallel()

	got := SplitSentences("А. С. Пушкин родился в Москве. Он писал стихи.", language.Russian)
	if len(got) != 2 {
		t.Fatalf("expected two sentences, got %q", got)
	}
}

func TestSplitSentencesCyrillicNeedsCapital(t *testing.T) {
	t.Parallel()

	got := SplitSentences("Он сказал: привет! как дела?", language.Kazakh)
	if len(got) != 1 {
		t.Fatalf("expected lowercase continuation to stay in one sentence, got %q", got)
	}

	got = SplitSentences("Он сказал: привет! как дела?", language.English)
	if len(got) != 2 {
		t.Fatalf("expected english rules to split regardless of case, got %q", got)
	}
}

func TestSplitSentencesBlankLine(t *testing.T) {
	t.Parallel()

	got := SplitSentences("First line\n\nSecond line\nstill second", language.English)
	want := []string{"First line", "Second line\nstill second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sentences:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestWordsKeepsOnlyAlphabeticTokens(t *testing.T) {
	t.Parallel()

	got := Words("Don't stop, 42 times! Well-known e-mail. abc123")
	want := []string{"Don't", "stop", "times", "Well", "known", "e", "mail"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected words:\nwant: %q\ngot:  %q", want, got)
	}
}
