package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Values("X-App"); len(got) != 2 || got[0] != "1" || got[1] != "2" {
			t.Errorf("expected both X-App values, got %v", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":1}` {
			t.Errorf("unexpected body %q", body)
		}
		w.Header().Set("X-Reply", "ok")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    srv.URL + "/things",
		Header: http.Header{
			"Content-Type": {"application/json"},
			"X-App":        {"1", "2"},
		},
		Body: []byte(`{"a":1}`),
		Mode: ModeCORS,
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Reply") != "ok" {
		t.Fatalf("missing response header, got %v", resp.Header)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Fatalf("unexpected response body %q", resp.Body)
	}
}

func TestRestyClientHonorsRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewRestyClient(0)
	_, err := client.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestRestyClientRejectsNilRequest(t *testing.T) {
	if _, err := NewRestyClient(time.Second).Do(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil request")
	}
}
