package httpclient

import (
	"context"
	"net/http"
	"time"
)

// ModeCORS is the fetch mode requested by API calls. It only has meaning for
// browser transports and is carried for parity with them.
const ModeCORS = "cors"

// Request is a fully built outbound HTTP request.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Body is nil when no request body is sent.
	Body []byte
	Mode string
	// Timeout is a hint for the transport; zero means no per-request timeout.
	Timeout time.Duration
}

// Response is the raw transport response handed back to callers.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer abstracts HTTP calls so callers can inject mocks or different transports.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(ctx context.Context, req *Request) (*Response, error)

func (f DoerFunc) Do(ctx context.Context, req *Request) (*Response, error) { return f(ctx, req) }
