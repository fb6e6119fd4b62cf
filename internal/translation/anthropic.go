package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"horse.fit/textlens/internal/language"
)

const (
	DefaultAnthropicModel = "claude-3-5-haiku-latest"

	anthropicMaxTokens = 4096
)

// AnthropicOptions configures an AnthropicBackend. A blank BaseURL uses the
// SDK default (or ANTHROPIC_BASE_URL).
type AnthropicOptions struct {
	BaseURL string
	Model   string
	APIKey  string
	RPS     float64
	Timeout time.Duration
}

// AnthropicBackend translates through the Anthropic Messages API with the
// same prompts as OpenAIBackend.
type AnthropicBackend struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
	timeout time.Duration
}

func NewAnthropicBackend(opts AnthropicOptions) *AnthropicBackend {
	// Capability failures are surfaced, not retried.
	requestOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(key))
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(base))
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultAnthropicModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &AnthropicBackend{
		client:  anthropic.NewClient(requestOpts...),
		model:   model,
		limiter: newLimiter(opts.RPS),
		timeout: timeout,
	}
}

func (b *AnthropicBackend) Name() string {
	return "anthropic"
}

func (b *AnthropicBackend) ForPair(pair language.Pair) Capability {
	return &anthropicCapability{backend: b, pair: pair}
}

type anthropicCapability struct {
	backend *AnthropicBackend
	pair    language.Pair
}

func (c *anthropicCapability) Name() string {
	return c.backend.Name() + ":" + c.backend.model
}

func (c *anthropicCapability) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
	if len(batch) == 0 {
		return []string{}, nil
	}
	if err := waitLimiter(ctx, c.backend.limiter); err != nil {
		return nil, err
	}

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

func (b *AnthropicBackend) complete(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	msg, err := b.client.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{{
			Text: "You are a professional translator. Output only the translation.",
		}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			out.WriteString(text.Text)
		}
	}
	content := strings.TrimSpace(out.String())
	if content == "" {
		return "", fmt.Errorf("translation response was empty")
	}
	return content, nil
}
