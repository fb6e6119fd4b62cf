package payloadschema

import (
	"errors"
	"testing"
)

func TestValidateReadabilityRequest_Valid(t *testing.T) {
	req, err := ValidateReadabilityRequest([]byte(`{"text":"Кот сидит.","lang":"ru"}`))
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}
	if req.Text != "Кот сидит." || req.Lang != "ru" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestValidateReadabilityRequest_LangOptional(t *testing.T) {
	req, err := ValidateReadabilityRequest([]byte(`{"text":"hello there"}`))
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}
	if req.Lang != "" {
		t.Fatalf("expected empty lang, got %q", req.Lang)
	}
}

func TestValidateReadabilityRequest_Invalid(t *testing.T) {
	payloads := []string{
		``,
		`{"text":"x"} {"text":"y"}`,
		`{"lang":"ru"}`,
		`{"text":"x","lang":"de"}`,
		`{"text":"x","extra":true}`,
		`{"text":""}`,
		`{"text":"   "}`,
		`{"text":42}`,
	}
	for _, payload := range payloads {
		if _, err := ValidateReadabilityRequest([]byte(payload)); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload for %q, got %v", payload, err)
		}
	}
}

func TestValidateTranslateRequest(t *testing.T) {
	req, err := ValidateTranslateRequest([]byte(`{"text":"Кот сидит.","source_lang":"ru","target_lang":"en"}`))
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}
	if req.SourceLang != "ru" || req.TargetLang != "en" {
		t.Fatalf("unexpected request: %+v", req)
	}

	for _, payload := range []string{
		`{"text":"x"}`,
		`{"text":"x","target_lang":"EN"}`,
		`{"text":"x","target_lang":"en","source_lang":"russian"}`,
	} {
		if _, err := ValidateTranslateRequest([]byte(payload)); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("expected ErrInvalidPayload for %q, got %v", payload, err)
		}
	}
}
