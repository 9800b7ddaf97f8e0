package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Adda-Baaj/foodstack-client/pkg/httpclient"
)

// CallRecord summarizes a finished Invoke for AfterHooks.
type CallRecord struct {
	Method   string
	Path     string
	URL      string
	Status   int
	Duration time.Duration
	Err      error
}

// AfterHook observes every Invoke once it resolves. Hooks run on the calling
// goroutine before Invoke returns.
type AfterHook func(ctx context.Context, rec CallRecord)

// Option customizes a Client.
type Option func(*Client)

// WithDoer replaces the transport. The default is a resty-backed client.
func WithDoer(d httpclient.Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithRegistry sets the registry used to resolve Model shapes.
func WithRegistry(r *Registry) Option {
	return func(c *Client) {
		if r != nil {
			c.shapes = r
		}
	}
}

// WithAfterHook appends a hook run after each call.
func WithAfterHook(h AfterHook) Option {
	return func(c *Client) {
		if h != nil {
			c.after = append(c.after, h)
		}
	}
}

// WithLogger sets the logger used for per-call records.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client performs API calls against one backend. It is safe for concurrent use.
type Client struct {
	mu  sync.RWMutex
	cfg Config

	doer   httpclient.Doer
	shapes *Registry
	after  []AfterHook
	log    Logger
}

// New builds a Client from cfg. The config is copied.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg.normalized(),
		shapes: NewRegistry(nil),
		log:    noopLogger{},
	}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	if c.doer == nil {
		c.doer = httpclient.NewRestyClient(0)
	}
	return c
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.normalized()
}

// Registry returns the shape registry in use.
func (c *Client) Registry() *Registry { return c.shapes }

// SetHeader adds an instance header value. Calls already in flight are unaffected.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := cloneHeader(c.cfg.Headers)
	h.Add(key, value)
	c.cfg.Headers = h
}

// SetDefaultHeader adds a default header value. Calls already in flight are unaffected.
func (c *Client) SetDefaultHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := cloneHeader(c.cfg.DefaultHeaders)
	h.Add(key, value)
	c.cfg.DefaultHeaders = h
}

func (c *Client) snapshot() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// BuildRequest turns spec into the transport request without sending it.
func (c *Client) BuildRequest(spec CallSpec) (*httpclient.Request, error) {
	return buildRequest(c.snapshot(), spec)
}

func buildRequest(cfg Config, spec CallSpec) (*httpclient.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(spec.Method))
	if method == "" {
		method = http.MethodGet
	}

	uri := cfg.BuildURI(spec.Path, spec.PathParams)
	fullURL, err := AppendQuery(uri, spec.QueryParams)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	header := cfg.BuildHeaders(spec.HeaderParams)
	body, err := BuildBody(spec.Body)
	if err != nil {
		return nil, err
	}
	if err := spec.Credentials.Apply(header); err != nil {
		return nil, err
	}

	return &httpclient.Request{
		Method:  method,
		URL:     fullURL,
		Header:  header,
		Body:    body,
		Mode:    httpclient.ModeCORS,
		Timeout: cfg.Timeout,
	}, nil
}

// Invoke performs the call described by spec. It makes at most one network
// attempt and fails fast on any step.
func (c *Client) Invoke(ctx context.Context, spec CallSpec) (*CallResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	req, res, err := c.invoke(ctx, spec)

	rec := CallRecord{
		Method:   strings.ToUpper(spec.Method),
		Path:     spec.Path,
		Status:   res.StatusCode(),
		Duration: time.Since(start),
		Err:      err,
	}
	if req != nil {
		rec.Method = req.Method
		rec.URL = req.URL
	}
	if se, ok := AsHTTPStatusError(err); ok {
		rec.Status = se.Status
	}
	c.observe(ctx, rec)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) invoke(ctx context.Context, spec CallSpec) (*httpclient.Request, *CallResult, error) {
	req, err := buildRequest(c.snapshot(), spec)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return req, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	if err := CheckResponse(req, resp); err != nil {
		return req, nil, err
	}
	if resp == nil || resp.StatusCode == http.StatusNoContent {
		return req, &CallResult{Response: resp}, nil
	}

	var decoded any
	if err := codec.Unmarshal(resp.Body, &decoded); err != nil {
		return req, nil, fmt.Errorf("decode response body: %w", err)
	}
	data, err := c.shapes.Coerce(decoded, spec.Returns)
	if err != nil {
		return req, nil, err
	}
	return req, &CallResult{Data: data, Response: resp}, nil
}

// CheckResponse fails with *HTTPStatusError when the status is outside [200, 300).
// A nil response is accepted.
func CheckResponse(req *httpclient.Request, resp *httpclient.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	se := &HTTPStatusError{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   bodySnippet(resp.Body),
	}
	if req != nil {
		se.Method = req.Method
		se.URL = req.URL
	}
	return se
}

func (c *Client) observe(ctx context.Context, rec CallRecord) {
	fields := map[string]any{
		"method":     rec.Method,
		"url":        rec.URL,
		"status":     rec.Status,
		"elapsed_ms": rec.Duration.Milliseconds(),
	}
	if rec.Err != nil {
		fields["error"] = rec.Err.Error()
		c.log.WarnObj("api call failed", "api_call", fields)
	} else {
		c.log.DebugObj("api call completed", "api_call", fields)
	}

	for _, h := range c.after {
		h(ctx, rec)
	}
}
