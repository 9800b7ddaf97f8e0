package endpoints

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
)

func TestLoadCatalogYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	raw := `
endpoints:
  - id: login
    path: /security/login
    method: post
    auth: none
    returns: Login
  - id: feedback
    path: /feedbacks/{id}
    returns: Collection
    headers:
      X-Trace: "on"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if ids := cat.IDs(); len(ids) != 2 || ids[0] != "feedback" || ids[1] != "login" {
		t.Fatalf("unexpected ids %v", ids)
	}

	login, ok := cat.ByID("login")
	if !ok {
		t.Fatalf("expected login endpoint")
	}
	if login.Method != http.MethodPost || login.RequiresAuth() {
		t.Fatalf("unexpected login endpoint %+v", login)
	}

	feedback, _ := cat.ByID("feedback")
	if feedback.Method != http.MethodGet || !feedback.RequiresAuth() {
		t.Fatalf("expected GET + bearer defaults, got %+v", feedback)
	}
}

func TestLoadCatalogJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.json")
	raw := `{"endpoints":[{"id":"count","path":"/stats/count","auth":"none","returns":"Integer"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if _, ok := cat.ByID("count"); !ok {
		t.Fatalf("expected count endpoint")
	}
}

func TestNewCatalogRejectsInvalidEntries(t *testing.T) {
	cases := map[string][]Endpoint{
		"empty":     nil,
		"no id":     {{Path: "/x"}},
		"no path":   {{ID: "x"}},
		"bad auth":  {{ID: "x", Path: "/x", Auth: "basic"}},
		"bad verb":  {{ID: "x", Path: "/x", Method: "BREW"}},
		"duplicate": {{ID: "x", Path: "/x"}, {ID: " x ", Path: "/y"}},
	}
	for name, eps := range cases {
		if _, err := NewCatalog(eps); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestEndpointCallSpec(t *testing.T) {
	e := sanitizeEndpoint(Endpoint{
		ID:      "feedback",
		Path:    "/feedbacks/{id}",
		Returns: "[String]",
		Headers: map[string]string{"X-App": "1"},
	})

	spec := e.CallSpec(CallParams{
		Path:   map[string]any{"id": 3},
		Query:  map[string]any{"page": 1},
		Header: map[string]any{"X-App": "2"},
	}, apiclient.BearerToken("tok"))

	if spec.Method != http.MethodGet || spec.Path != "/feedbacks/{id}" {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if spec.Credentials.Kind != apiclient.AuthBearer || spec.Credentials.AccessToken != "tok" {
		t.Fatalf("expected bearer credentials, got %+v", spec.Credentials)
	}
	if spec.Returns.String() != "[String]" {
		t.Fatalf("unexpected return shape %q", spec.Returns)
	}

	h := apiclient.Config{}.BuildHeaders(spec.HeaderParams)
	if got := h.Values("X-App"); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Fatalf("expected catalog then caller header values, got %v", got)
	}

	multi := e.CallSpec(CallParams{Header: map[string]any{"X-App": []string{"a", "b"}}}, apiclient.NoAuth())
	h = apiclient.Config{}.BuildHeaders(multi.HeaderParams)
	if got := h.Values("X-App"); len(got) != 3 || got[0] != "1" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("expected repeated caller values flattened after catalog value, got %q", got)
	}

	anon := sanitizeEndpoint(Endpoint{ID: "login", Path: "/security/login", Auth: AuthNone})
	if got := anon.CallSpec(CallParams{}, apiclient.BearerToken("tok")).Credentials.Kind; got != apiclient.AuthNone {
		t.Fatalf("expected no credentials for anonymous endpoint, got %v", got)
	}
}
