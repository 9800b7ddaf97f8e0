package apiclient

import (
	"net/http"
	"strings"

	"github.com/Adda-Baaj/foodstack-client/pkg/httpclient"
)

// AuthKind selects how a call authenticates.
type AuthKind int

const (
	AuthNone AuthKind = iota
	AuthBearer
)

func (k AuthKind) String() string {
	switch k {
	case AuthBearer:
		return "bearer"
	default:
		return "none"
	}
}

// Credentials is the authentication variant of a call: none or a bearer token.
type Credentials struct {
	Kind        AuthKind
	AccessToken string
}

// NoAuth returns credentials for an anonymous call.
func NoAuth() Credentials { return Credentials{Kind: AuthNone} }

// BearerToken returns bearer credentials carrying token.
func BearerToken(token string) Credentials {
	return Credentials{Kind: AuthBearer, AccessToken: token}
}

// Apply adds the Authorization header required by c. Bearer credentials with
// an empty token fail with *AuthenticationError.
func (c Credentials) Apply(h http.Header) error {
	switch c.Kind {
	case AuthNone:
		return nil
	case AuthBearer:
		token := strings.TrimSpace(c.AccessToken)
		if token == "" {
			return &AuthenticationError{Reason: `bearer authentication requires an "accessToken"`}
		}
		h.Add("Authorization", "Bearer "+token)
		return nil
	default:
		return &AuthenticationError{Reason: "unsupported credentials kind " + c.Kind.String()}
	}
}

// CallSpec describes one outbound request.
type CallSpec struct {
	// Path is appended to the base URL; {name} placeholders are filled from PathParams.
	Path   string
	Method string

	PathParams map[string]any
	// QueryParams values may be scalars or slices; slices become repeated keys.
	QueryParams  map[string]any
	HeaderParams map[string]any

	// Body is JSON-encoded when non-nil.
	Body any

	Credentials Credentials
	Returns     Shape
}

// CallResult is the outcome of a successful call.
type CallResult struct {
	// Data is nil for 204 responses.
	Data     any
	Response *httpclient.Response
}

// StatusCode returns the response status, or 0 when no response is attached.
func (r *CallResult) StatusCode() int {
	if r == nil || r.Response == nil {
		return 0
	}
	return r.Response.StatusCode
}
