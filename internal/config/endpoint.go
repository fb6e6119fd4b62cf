package config

import (
	"net/url"
	"strings"
)

// DefaultOpenAIEndpoint points to a local OpenAI-compatible endpoint.
const DefaultOpenAIEndpoint = "http://127.0.0.1:8845/v1"

// NormalizeOpenAIEndpoint turns an operator supplied endpoint into a client
// base URL. A trailing /chat/completions is stripped because the client
// appends it, and a bare host gets /v1.
func NormalizeOpenAIEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultOpenAIEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultOpenAIEndpoint
	}
	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/chat/completions")
	if path == "" {
		path = "/v1"
	}
	parsed.Path = path
	return parsed.String()
}
