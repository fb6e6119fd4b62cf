package language

import "testing"

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	if got := NormalizeTag(" RU_kz "); got != "ru-kz" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("kk-Cyrl"); got != "kk-cyrl" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("en--US"); got != "en-us" {
		t.Fatalf("unexpected collapsed tag: %q", got)
	}
	if got := NormalizeTag("en_123"); got != "" {
		t.Fatalf("expected invalid tag to normalize to empty string, got %q", got)
	}
	if got := NormalizeTag("en-abcdefghi"); got != "" {
		t.Fatalf("expected overlong subtag to normalize to empty string, got %q", got)
	}
	if got := NormalizeTag("--"); got != "" {
		t.Fatalf("expected separators only to normalize to empty string, got %q", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	if got := NormalizeCode(" EN-us "); got != English {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode("kk"); got != Kazakh {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode(" "); got != "" {
		t.Fatalf("expected empty code for blank input, got %q", got)
	}
	if got := NormalizeCode("Auto"); got != Auto {
		t.Fatalf("expected auto to pass through, got %q", got)
	}
}

func TestNormalizeCodeAliases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Code
	}{
		{raw: "rus", want: Russian},
		{raw: "ENG", want: English},
		{raw: "kaz", want: Kazakh},
		{raw: "kz", want: Kazakh},
		{raw: "kz-Cyrl", want: Kazakh},
		{raw: "de", want: "de"},
	}
	for _, tc := range cases {
		if got := NormalizeCode(tc.raw); got != tc.want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParsePairs(t *testing.T) {
	t.Parallel()

	pairs, err := ParsePairs("ru:en, en>ru,,kk:EN,ru:en")
	if err != nil {
		t.Fatalf("parse pairs: %v", err)
	}
	want := []Pair{{Russian, English}, {English, Russian}, {Kazakh, English}}
	if len(pairs) != len(want) {
		t.Fatalf("unexpected pair count: got %d want %d (%v)", len(pairs), len(want), pairs)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d: got %v want %v", i, pairs[i], want[i])
		}
	}

	if _, err := ParsePairs("ru"); err == nil {
		t.Fatalf("expected error for pair without separator")
	}
	if _, err := ParsePairs("en:en"); err == nil {
		t.Fatalf("expected error for identity pair")
	}
}

func TestOptionsSortedWithLabels(t *testing.T) {
	t.Parallel()

	options := Options([]Code{Russian, "de", Kazakh})
	if len(options) != 3 {
		t.Fatalf("unexpected option count: %d", len(options))
	}
	if options[0].Code != "de" || options[0].Label != "DE" {
		t.Fatalf("unexpected fallback option: %+v", options[0])
	}
	if options[1].Code != "kk" || options[1].Native != "Қазақша" {
		t.Fatalf("unexpected kazakh option: %+v", options[1])
	}
}
