package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"horse.fit/textlens/internal/language"
)

// DefaultLibreTranslateURL is the default LibreTranslate/Argos server.
const DefaultLibreTranslateURL = "http://127.0.0.1:5000"

// LibreTranslateOptions configures a LibreTranslateBackend.
type LibreTranslateOptions struct {
	URL     string
	APIKey  string
	RPS     float64
	Timeout time.Duration
}

// LibreTranslateBackend translates through a LibreTranslate server, which
// runs Argos Translate models offline.
type LibreTranslateBackend struct {
	translateURL string
	apiKey       string
	client       *http.Client
	limiter      *rate.Limiter
}

func NewLibreTranslateBackend(opts LibreTranslateOptions) *LibreTranslateBackend {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &LibreTranslateBackend{
		translateURL: libreTranslateURL(opts.URL),
		apiKey:       strings.TrimSpace(opts.APIKey),
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: newLimiter(opts.RPS),
	}
}

func (b *LibreTranslateBackend) Name() string {
	return "libretranslate"
}

func (b *LibreTranslateBackend) ForPair(pair language.Pair) Capability {
	return &libreTranslateCapability{backend: b, pair: pair}
}

type libreTranslateCapability struct {
	backend *LibreTranslateBackend
	pair    language.Pair
}

func (c *libreTranslateCapability) Name() string {
	return c.backend.Name()
}

func (c *libreTranslateCapability) TranslateBatch(ctx context.Context, batch []string) ([]string, error) {
	if len(batch) == 0 {
		return []string{}, nil
	}
	if err := waitLimiter(ctx, c.backend.limiter); err != nil {
		return nil, err
	}

	body, err := json.Marshal(libreTranslateRequest{
		Q:      batch,
		Source: string(c.pair.Source),
		Target: string(c.pair.Target),
		Format: "text",
		APIKey: c.backend.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backend.translateURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.backend.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload libreTranslateError
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error); msg != "" {
				return nil, fmt.Errorf("libretranslate status %d: %s", resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("libretranslate status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed libreTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	return parsed.TranslatedText, nil
}

type libreTranslateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
	APIKey string   `json:"api_key,omitempty"`
}

type libreTranslateResponse struct {
	TranslatedText []string `json:"translatedText"`
}

type libreTranslateError struct {
	Error string `json:"error"`
}

func libreTranslateURL(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		endpoint = DefaultLibreTranslateURL
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLibreTranslateURL + "/translate"
	}
	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/translate") {
		path += "/translate"
	}
	parsed.Path = path
	return parsed.String()
}
