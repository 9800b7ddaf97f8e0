package apiclient

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://apistaging.foodstack.fr"

	ContentTypeJSON = "application/json;charset=UTF-8"
	AcceptHALJSON   = "application/hal+json;charset=UTF-8"
)

// Config is the per-client configuration. It is built once and passed to New;
// the client keeps its own copy.
type Config struct {
	// BaseURL is the root every call path is appended to. Trailing slashes are stripped.
	BaseURL string
	// DefaultHeaders are sent with every call, before the instance headers.
	DefaultHeaders http.Header
	// Headers are instance headers, sent after DefaultHeaders.
	Headers http.Header
	// Timeout is forwarded to the transport as a hint; zero means unset.
	Timeout time.Duration
}

// NormalizeBaseURL trims whitespace and trailing slashes. An empty value falls
// back to DefaultBaseURL.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	return strings.TrimRight(raw, "/")
}

func (cfg Config) normalized() Config {
	return Config{
		BaseURL:        NormalizeBaseURL(cfg.BaseURL),
		DefaultHeaders: cloneHeader(cfg.DefaultHeaders),
		Headers:        cloneHeader(cfg.Headers),
		Timeout:        cfg.Timeout,
	}
}

func cloneHeader(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vv := range h {
		for _, v := range vv {
			out.Add(k, v)
		}
	}
	return out
}
