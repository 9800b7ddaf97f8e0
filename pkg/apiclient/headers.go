package apiclient

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// codec is the JSON implementation used for request bodies and responses.
var codec = sonic.ConfigStd

// BuildHeaders assembles the request headers. Order matters: the fixed content
// negotiation headers come first, then default, instance and per-call headers
// are appended. A name present in several layers ends up multi-valued.
func (cfg Config) BuildHeaders(headerParams map[string]any) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", ContentTypeJSON)
	h.Set("Accept", AcceptHALJSON)

	appendHeader(h, cfg.DefaultHeaders)
	appendHeader(h, cfg.Headers)

	for name, value := range NormalizeParams(headerParams) {
		for _, v := range value {
			h.Add(name, v)
		}
	}
	return h
}

func appendHeader(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

// BuildBody JSON-encodes the payload. A nil payload yields a nil body.
func BuildBody(payload any) ([]byte, error) {
	if isNil(payload) {
		return nil, nil
	}
	body, err := codec.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return body, nil
}
