package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

type messagesRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func messagesServer(t *testing.T, status int, reply string, seen *[]messagesRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		*seen = append(*seen, req)

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": "overloaded"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"model":       req.Model,
			"stop_reason": "end_turn",
			"content":     []map[string]any{{"type": "text", "text": reply}},
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicCapabilityBatch(t *testing.T) {
	t.Parallel()

	var seen []messagesRequest
	srv := messagesServer(t, http.StatusOK, `["The cat sits", "The dog runs"]`, &seen)

	backend := NewAnthropicBackend(AnthropicOptions{BaseURL: srv.URL, Model: "claude-test", APIKey: "test-key"})
	capability := backend.ForPair(ruEn)
	if capability.Name() != "anthropic:claude-test" {
		t.Fatalf("unexpected capability name %q", capability.Name())
	}

	got, err := capability.TranslateBatch(context.Background(), []string{"Кот сидит", "Собака бежит"})
	if err != nil {
		t.Fatalf("TranslateBatch returned error: %v", err)
	}
	if want := []string{"The cat sits", "The dog runs"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected translations:\nwant: %q\ngot:  %q", want, got)
	}

	if len(seen) != 1 || seen[0].Model != "claude-test" || len(seen[0].Messages) != 1 {
		t.Fatalf("unexpected requests: %+v", seen)
	}
	prompt := seen[0].Messages[0].Content[0].Text
	if !strings.Contains(prompt, `["Кот сидит","Собака бежит"]`) || !strings.Contains(prompt, "exactly 2 strings") {
		t.Fatalf("unexpected batch prompt: %q", prompt)
	}
}

func TestAnthropicCapabilitySingleUnitUsesPlainPrompt(t *testing.T) {
	t.Parallel()

	var seen []messagesRequest
	srv := messagesServer(t, http.StatusOK, "  The cat sits  ", &seen)

	backend := NewAnthropicBackend(AnthropicOptions{BaseURL: srv.URL, APIKey: "test-key"})
	got, err := backend.ForPair(ruEn).TranslateBatch(context.Background(), []string{"Кот сидит"})
	if err != nil {
		t.Fatalf("TranslateBatch returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "The cat sits" {
		t.Fatalf("unexpected translations: %q", got)
	}
	if seen[0].Model != DefaultAnthropicModel {
		t.Fatalf("expected default model, got %q", seen[0].Model)
	}
	if prompt := seen[0].Messages[0].Content[0].Text; !strings.HasPrefix(prompt, "Translate the following segment into English") {
		t.Fatalf("unexpected prompt: %q", prompt)
	}
}

func TestAnthropicCapabilityDoesNotRetry(t *testing.T) {
	t.Parallel()

	var seen []messagesRequest
	srv := messagesServer(t, http.StatusInternalServerError, "", &seen)

	backend := NewAnthropicBackend(AnthropicOptions{BaseURL: srv.URL, APIKey: "test-key"})
	if _, err := backend.ForPair(ruEn).TranslateBatch(context.Background(), []string{"Кот сидит"}); err == nil {
		t.Fatalf("expected error from failing endpoint")
	}
	if len(seen) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(seen))
	}
}
