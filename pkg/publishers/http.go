package publishers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
	"github.com/Adda-Baaj/foodstack-client/pkg/httpclient"
)

// webhookPublisher posts call events to an HTTP endpoint through the same
// Doer boundary the API client uses. Event attributes travel as
// X-Foodstack-* headers so receivers can route without decoding the body.
type webhookPublisher struct {
	id      string
	method  string
	url     string
	header  http.Header
	timeout time.Duration
	doer    httpclient.Doer
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	header := make(http.Header, len(cfg.HTTP.Headers)+1)
	for k, v := range cfg.HTTP.Headers {
		header.Add(k, v)
	}
	header.Set("Content-Type", "application/json")

	method := cfg.HTTP.Method
	if method == "" {
		method = httpDefaultMethod
	}

	return &webhookPublisher{
		id:      cfg.ID,
		method:  method,
		url:     cfg.HTTP.URL,
		header:  header,
		timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		doer:    httpclient.NewRestyClient(0),
		log:     ensureLogger(log),
	}, nil
}

func (w *webhookPublisher) ID() string   { return w.id }
func (w *webhookPublisher) Type() string { return TypeHTTP }

func (w *webhookPublisher) Publish(ctx context.Context, evt CallEvent) error {
	body, err := sonic.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	header := w.header.Clone()
	for k, v := range evt.attributes() {
		header.Set(attributeHeader(k), v)
	}

	req := &httpclient.Request{
		Method:  w.method,
		URL:     w.url,
		Header:  header,
		Body:    body,
		Timeout: w.timeout,
	}
	resp, err := w.doer.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("deliver event %s: %w", evt.ID, err)
	}
	if err := apiclient.CheckResponse(req, resp); err != nil {
		return err
	}

	w.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": w.id,
		"event_id":     evt.ID,
		"status":       resp.StatusCode,
	})
	return nil
}

// attributeHeader maps "event_id" to "X-Foodstack-Event-Id".
func attributeHeader(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return "X-Foodstack-" + strings.Join(parts, "-")
}
