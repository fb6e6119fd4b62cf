package langdetect

import (
	"testing"

	"horse.fit/textlens/internal/language"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want language.Code
	}{
		{text: "The weather is lovely today and we are going for a walk in the park.", want: language.English},
		{text: "Сегодня прекрасная погода, и мы собираемся погулять в парке.", want: language.Russian},
		{text: "Бүгін ауа райы тамаша, біз саябаққа серуендеуге барамыз.", want: language.Kazakh},
		{text: "ok", want: ""},
		{text: "   ", want: ""},
	}
	for _, tc := range cases {
		if got := Detect(tc.text); got != tc.want {
			t.Fatalf("Detect(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	if got := Resolve("RU", "anything"); got != language.Russian {
		t.Fatalf("expected explicit code to win, got %q", got)
	}
	if got := Resolve(language.Auto, "The weather is lovely today and we are going outside."); got != language.English {
		t.Fatalf("expected detection for auto, got %q", got)
	}
	if got := Resolve("", "Сегодня прекрасная погода, и мы идём гулять."); got != language.Russian {
		t.Fatalf("expected detection for blank, got %q", got)
	}
}
