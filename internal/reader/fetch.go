// Package reader loads analyzable text from files and web pages.
package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
)

const (
	DefaultFetchTimeout  = 12 * time.Second
	DefaultBodyByteLimit = 2 * 1024 * 1024

	defaultUserAgent = "textlens-reader/1.0"
	acceptHeader     = "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8"
)

// ErrPageTooLarge is returned when a page body exceeds the fetcher's limit.
// A clipped page would skew every readability index, so it is rejected.
var ErrPageTooLarge = errors.New("page exceeds body limit")

// FetchOptions controls HTTP behavior for page extraction.
type FetchOptions struct {
	Timeout       time.Duration
	BodyByteLimit int64
	UserAgent     string
	HTTPClient    *http.Client
}

type Fetcher struct {
	client    *http.Client
	limit     int64
	userAgent string
}

func NewFetcher(opts FetchOptions) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	limit := opts.BodyByteLimit
	if limit <= 0 {
		limit = DefaultBodyByteLimit
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{client: client, limit: limit, userAgent: userAgent}
}

// FetchText retrieves a page with default options and extracts its readable text.
func FetchText(ctx context.Context, pageURL string) (string, error) {
	return NewFetcher(FetchOptions{}).Fetch(ctx, pageURL)
}

// Fetch retrieves pageURL and returns its main text. Plain-text responses are
// cleaned as-is; anything else goes through readability extraction.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	page, err := parsePageURL(pageURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, page.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "ru,kk;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", page.Redacted(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.limit+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.limit {
		return "", fmt.Errorf("%w (%d bytes)", ErrPageTooLarge, f.limit)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.TrimSpace(contentType) == "" {
		contentType = http.DetectContentType(body)
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/plain") {
		return nonEmpty(CleanText(string(body)))
	}
	return extractHTML(body, page)
}

func parsePageURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("url %q must be an http(s) address", trimmed)
	}
	return parsed, nil
}

func extractHTML(body []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	var rendered bytes.Buffer
	if err := article.RenderText(&rendered); err != nil {
		return "", fmt.Errorf("render readability text: %w", err)
	}

	// Fall back to the excerpt, then the title, for pages with no article body.
	for _, candidate := range []string{rendered.String(), article.Excerpt(), article.Title()} {
		if text := CleanText(candidate); text != "" {
			return text, nil
		}
	}
	return nonEmpty("")
}
