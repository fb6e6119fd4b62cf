// Package sentiment classifies the polarity of Russian and English text.
package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"horse.fit/textlens/internal/config"
	"horse.fit/textlens/internal/language"
)

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// classifyTemperature stays above zero because a zero value is omitted from
// the request and the server default applies instead.
const classifyTemperature = 0.1

var ErrUnsupportedLanguage = errors.New("sentiment is not available for this language")

// Result is one classification.
type Result struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

type Classifier interface {
	Classify(ctx context.Context, text string, lang language.Code) (Result, error)
}

// Supports reports whether sentiment is offered for lang. Kazakh has no
// sentiment model.
func Supports(lang language.Code) bool {
	return lang == language.Russian || lang == language.English
}

// Options configures an OpenAIClassifier.
type Options struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// OpenAIClassifier asks an OpenAI-compatible chat model for a label.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClassifier(opts Options) *OpenAIClassifier {
	cfg := openai.DefaultConfig(strings.TrimSpace(opts.APIKey))
	cfg.BaseURL = config.NormalizeOpenAIEndpoint(opts.Endpoint)
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClassifier{
		client:  openai.NewClientWithConfig(cfg),
		model:   strings.TrimSpace(opts.Model),
		timeout: timeout,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string, lang language.Code) (Result, error) {
	if !Supports(lang) {
		return Result{}, ErrUnsupportedLanguage
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Label: Neutral, Score: 1}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(lang),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: classifyTemperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("sentiment completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("sentiment response missing choices")
	}
	return parseResult(resp.Choices[0].Message.Content)
}

func systemPrompt(lang language.Code) string {
	return "Classify the sentiment of the user's " + lang.Label() + " text. " +
		`Reply with only JSON: {"label": "positive" | "neutral" | "negative", "score": <confidence between 0 and 1>}.`
}

func parseResult(content string) (Result, error) {
	content = strings.TrimSpace(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return Result{}, fmt.Errorf("sentiment response has no JSON object: %q", content)
	}

	var raw struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return Result{}, fmt.Errorf("decode sentiment response: %w", err)
	}

	label := Label(strings.ToLower(strings.TrimSpace(raw.Label)))
	switch label {
	case Positive, Neutral, Negative:
	default:
		return Result{}, fmt.Errorf("unknown sentiment label %q", raw.Label)
	}
	return Result{Label: label, Score: min(1, max(0, raw.Score))}, nil
}
