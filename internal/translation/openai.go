package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"horse.fit/textlens/internal/config"
	"horse.fit/textlens/internal/language"
)

const (
	// DefaultOpenAIEndpoint points to a local OpenAI-compatible translation endpoint.
	DefaultOpenAIEndpoint = config.DefaultOpenAIEndpoint
	// DefaultOpenAIModel is the default HY-MT model name.
	DefaultOpenAIModel = "tencent/HY-MT1.5-7B"

	defaultCallTimeout = 120 * time.Second
)

var markdownCodeBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// OpenAIOptions configures an OpenAIBackend.
type OpenAIOptions struct {
	Endpoint string
	Model    string
	APIKey   string
	// RPS limits capability calls per second across all pairs; 0 disables it.
	RPS     float64
	Timeout time.Duration
}

// OpenAIBackend translates through an OpenAI-compatible chat completions
// endpoint such as a local HY-MT server.
type OpenAIBackend struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	timeout time.Duration
}

func NewOpenAIBackend(opts OpenAIOptions) *OpenAIBackend {
	cfg := openai.DefaultConfig(strings.TrimSpace(opts.APIKey))
	cfg.BaseURL = config.NormalizeOpenAIEndpoint(opts.Endpoint)

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &OpenAIBackend{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: newLimiter(opts.RPS),
		timeout: timeout,
	}
}

func (b *OpenAIBackend) Name() string {
	return "openai"
}

func (b *OpenAIBackend) ForPair(pair language.Pair) Capability {
	return &openAICapability{backend: b, pair: pair}
}

type openAICapability struct {
	backend *OpenAIBackend
	pair    language.Pair
}

func (c *openAICapability) Name() string {
	return c.backend.Name() + ":" + c.backend.model
}

func (c *openAICapability) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
	if len(batch) == 0 {
		return []string{}, nil
	}
	if err := waitLimiter(ctx, c.backend.limiter); err != nil {
		return nil, err
	}

	// Single units use the plain HY-MT template; models follow it more
	// reliably than the JSON array form.
	if len(batch) == 1 {
		content, err := c.backend.complete(ctx, buildHYMTPrompt(batch[0], c.pair.Target))
		if err != nil {
			return nil, err
		}
		return []string{content}, nil
	}

	prompt, err := buildBatchPrompt(batch, c.pair)
	if err != nil {
		return nil, err
	}
	content, err := c.backend.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseTranslations(content)
}

func (b *OpenAIBackend) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	resp, err := b.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature: 0.7,
		TopP:        0.6,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translation response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("translation response was empty")
	}
	return content, nil
}

func buildHYMTPrompt(text string, target language.Code) string {
	return fmt.Sprintf("Translate the following segment into %s, without additional explanation.\n\n%s", target.Label(), text)
}

func buildBatchPrompt(batch []string, pair language.Pair) (string, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("marshal batch: %w", err)
	}
	return fmt.Sprintf(
		"Translate each string of the following JSON array from %s into %s. "+
			"Reply with only a JSON array of exactly %d strings in the same order, without additional explanation.\n\n%s",
		pair.Source.Label(),
		pair.Target.Label(),
		len(batch),
		payload,
	), nil
}

// parseTranslations extracts a JSON array of strings from the model reply.
func parseTranslations(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}

	startIdx := strings.Index(content, "[")
	endIdx := strings.LastIndex(content, "]")
	if startIdx >= 0 && endIdx > startIdx {
		content = content[startIdx : endIdx+1]
	}

	var translations []string
	if err := json.Unmarshal([]byte(content), &translations); err != nil {
		return nil, fmt.Errorf("parse translation response as JSON array: %w", err)
	}
	return translations, nil
}
