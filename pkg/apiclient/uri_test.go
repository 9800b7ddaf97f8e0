package apiclient

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseURLStripsTrailingSlashes(t *testing.T) {
	got := NormalizeBaseURL("https://api.example.com///")
	assert.Equal(t, "https://api.example.com", got)
	assert.Equal(t, got, NormalizeBaseURL(got))

	c := New(Config{BaseURL: "https://api.example.com/v1/"})
	assert.Equal(t, "https://api.example.com/v1", c.Config().BaseURL)
	assert.Equal(t, DefaultBaseURL, New(Config{}).Config().BaseURL)
}

func TestBuildURISubstitutesPathParams(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.com/"}

	assert.Equal(t, "https://api.example.com/items/42", cfg.BuildURI("/items/{id}", map[string]any{"id": 42}))
	assert.Equal(t, "https://api.example.com/items/42", cfg.BuildURI("items/{id}", map[string]any{"id": "42"}))
	assert.Equal(t, "https://api.example.com/items/a%20b%2Fc", cfg.BuildURI("/items/{id}", map[string]any{"id": "a b/c"}))
}

func TestBuildURIKeepsMissingPlaceholder(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example.com"}
	got := cfg.BuildURI("/items/{id}/tags/{tag-name}", map[string]any{"tag-name": "x"})
	assert.Equal(t, "https://api.example.com/items/{id}/tags/x", got)
}

func TestAppendQueryKeepsSequences(t *testing.T) {
	got, err := AppendQuery("https://api.example.com/items", map[string]any{
		"page":    2,
		"tags":    []string{"a", "b"},
		"missing": nil,
	})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, []string{"2"}, q["page"])
	assert.Equal(t, []string{"a", "b"}, q["tags"])
	_, present := q["missing"]
	assert.False(t, present)
}

func TestAppendQueryMergesExistingQueryAndKeepsPath(t *testing.T) {
	got, err := AppendQuery("https://api.example.com/items/{id}?x=1&page=1", map[string]any{"page": 3})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "https://api.example.com/items/{id}?"), got)
	assert.Contains(t, got, "x=1")
	assert.Contains(t, got, "page=3")
	assert.NotContains(t, got, "page=1")

	same, err := AppendQuery("https://api.example.com/items", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/items", same)
}

func TestParamToString(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 6, 7, 8, 9_000_000, time.FixedZone("CET", 3600))

	assert.Equal(t, "", ParamToString(nil))
	assert.Equal(t, "2024-03-05T05:07:08.009Z", ParamToString(ts))
	assert.Equal(t, "2024-03-05T05:07:08.009Z", ParamToString(&ts))
	assert.Equal(t, "42", ParamToString(42))
	assert.Equal(t, "2.5", ParamToString(2.5))
	assert.Equal(t, "true", ParamToString(true))
	assert.Equal(t, "x", ParamToString("x"))
}

func TestBuildHeadersIsAdditiveAndOrdered(t *testing.T) {
	cfg := Config{
		DefaultHeaders: http.Header{"X-App": {"1"}},
		Headers:        http.Header{"X-App": {"2"}},
	}
	h := cfg.BuildHeaders(map[string]any{"X-App": "3", "X-Skip": nil})

	assert.Equal(t, []string{"1", "2", "3"}, h.Values("X-App"))
	assert.Equal(t, ContentTypeJSON, h.Get("Content-Type"))
	assert.Equal(t, AcceptHALJSON, h.Get("Accept"))
	assert.Empty(t, h.Values("X-Skip"))
}

func TestBuildBody(t *testing.T) {
	body, err := BuildBody(nil)
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = BuildBody(map[string]any{"email": "a@b.c", "password": "pw"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, string(body))
}

func TestCredentialsApply(t *testing.T) {
	h := make(http.Header)
	require.NoError(t, NoAuth().Apply(h))
	assert.Empty(t, h.Get("Authorization"))

	require.NoError(t, BearerToken("tok").Apply(h))
	assert.Equal(t, "Bearer tok", h.Get("Authorization"))

	err := BearerToken("  ").Apply(make(http.Header))
	require.Error(t, err)
	assert.True(t, IsAuthentication(err))
}

func TestParamValues(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, ParamValues([]string{"a", "b"}))
	assert.Equal(t, []any{"x"}, ParamValues("x"))
	assert.Equal(t, []any{[]byte("raw")}, ParamValues([]byte("raw")))
}
