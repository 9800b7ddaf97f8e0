package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
)

// Package endpoints contains the catalog of named API calls (YAML/JSON).

const (
	AuthNone   = "none"
	AuthBearer = "bearer"
)

// Endpoint is one named call declared in the catalog file.
type Endpoint struct {
	ID          string            `json:"id" yaml:"id"`
	Description string            `json:"description" yaml:"description"`
	Path        string            `json:"path" yaml:"path"`
	Method      string            `json:"method" yaml:"method"`
	Auth        string            `json:"auth" yaml:"auth"`
	Returns     string            `json:"returns" yaml:"returns"`
	Headers     map[string]string `json:"headers" yaml:"headers"`
}

// CallParams are the per-invocation values supplied for an endpoint.
type CallParams struct {
	Path   map[string]any
	Query  map[string]any
	Header map[string]any
	Body   any
}

type catalogFile struct {
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Catalog holds endpoints loaded from a catalog file.
type Catalog struct {
	mu        sync.RWMutex
	endpoints []Endpoint
	idx       map[string]Endpoint
}

// LoadCatalog loads the endpoint catalog from a YAML/JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("endpoints file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoints file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	parsed, err := parseCatalog(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewCatalog(parsed.Endpoints)
}

// NewCatalog validates endpoints and indexes them by id.
func NewCatalog(endpoints []Endpoint) (*Catalog, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("endpoints catalog contains no entries")
	}

	c := &Catalog{
		endpoints: make([]Endpoint, len(endpoints)),
		idx:       make(map[string]Endpoint, len(endpoints)),
	}
	for i := range endpoints {
		e := sanitizeEndpoint(endpoints[i])
		if err := validateEndpoint(e); err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		if _, exists := c.idx[e.ID]; exists {
			return nil, fmt.Errorf("duplicate endpoint id %q", e.ID)
		}
		c.endpoints[i] = e
		c.idx[e.ID] = e
	}
	return c, nil
}

func parseCatalog(data []byte, ext string) (catalogFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f catalogFile
		if err := d.fn(data, &f); err == nil {
			return f, nil
		}
	}

	return catalogFile{}, errors.New("endpoints file format not recognized (expected YAML or JSON)")
}

func sanitizeEndpoint(e Endpoint) Endpoint {
	e.ID = strings.TrimSpace(e.ID)
	e.Description = strings.TrimSpace(e.Description)
	e.Path = strings.TrimSpace(e.Path)
	e.Method = strings.ToUpper(strings.TrimSpace(e.Method))
	if e.Method == "" {
		e.Method = http.MethodGet
	}
	e.Auth = strings.ToLower(strings.TrimSpace(e.Auth))
	if e.Auth == "" {
		e.Auth = AuthBearer
	}
	e.Returns = strings.TrimSpace(e.Returns)

	if len(e.Headers) > 0 {
		h := make(map[string]string, len(e.Headers))
		for k, v := range e.Headers {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k == "" || v == "" {
				continue
			}
			h[k] = v
		}
		e.Headers = h
	}
	return e
}

func validateEndpoint(e Endpoint) error {
	if e.ID == "" {
		return errors.New("id is required")
	}
	if e.Path == "" {
		return fmt.Errorf("path is required for endpoint %q", e.ID)
	}
	switch e.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead:
	default:
		return fmt.Errorf("unsupported method %q for endpoint %q", e.Method, e.ID)
	}
	if e.Auth != AuthNone && e.Auth != AuthBearer {
		return fmt.Errorf("unsupported auth %q for endpoint %q (expected none or bearer)", e.Auth, e.ID)
	}
	return nil
}

// ByID returns the endpoint declared under id.
func (c *Catalog) ByID(id string) (Endpoint, bool) {
	if c == nil {
		return Endpoint{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Endpoint{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.idx[id]
	return e, ok
}

// All returns all endpoints in declaration order.
func (c *Catalog) All() []Endpoint {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

// IDs returns the sorted endpoint ids.
func (c *Catalog) IDs() []string {
	all := c.All()
	ids := make([]string, 0, len(all))
	for _, e := range all {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

// RequiresAuth reports whether calls to e need bearer credentials.
func (e Endpoint) RequiresAuth() bool { return e.Auth == AuthBearer }

// CallSpec builds the client call for e. Catalog headers are sent before
// caller-supplied ones. creds is only used when the endpoint requires auth.
func (e Endpoint) CallSpec(params CallParams, creds apiclient.Credentials) apiclient.CallSpec {
	headers := make(map[string]any, len(e.Headers)+len(params.Header))
	for k, v := range e.Headers {
		headers[k] = v
	}
	for k, v := range params.Header {
		if existing, ok := headers[k]; ok {
			headers[k] = append(apiclient.ParamValues(existing), apiclient.ParamValues(v)...)
			continue
		}
		headers[k] = v
	}

	spec := apiclient.CallSpec{
		Path:         e.Path,
		Method:       e.Method,
		PathParams:   params.Path,
		QueryParams:  params.Query,
		HeaderParams: headers,
		Body:         params.Body,
		Credentials:  apiclient.NoAuth(),
		Returns:      apiclient.ParseShape(e.Returns),
	}
	if e.RequiresAuth() {
		spec.Credentials = creds
	}
	return spec
}
