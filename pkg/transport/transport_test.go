package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saturnines/graphql-request/pkg/auth"
)

func TestHTTPTransport_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-Custom"); got != "yes" {
			t.Errorf("Expected custom header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Expected JSON content type fallback, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"query":"q"}` {
			t.Errorf("Expected body forwarded, got %s", body)
		}
		w.Header().Set("X-Reply", "pong")
		io.WriteString(w, `{"data":{}}`)
	}))
	defer server.Close()

	tr := NewHTTPTransport()
	resp, err := tr.Do(context.Background(), &Request{
		Method:  http.MethodPost,
		URL:     server.URL,
		Headers: map[string]string{"x-custom": "yes"},
		Body:    []byte(`{"query":"q"}`),
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if resp.Status != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.Status)
	}
	if resp.Headers["x-reply"] != "pong" {
		t.Errorf("Expected lowercased response headers, got %v", resp.Headers)
	}
	if string(resp.Body) != `{"data":{}}` {
		t.Errorf("Expected body captured, got %s", resp.Body)
	}
}

func TestHTTPTransport_FinalURLAfterRedirect(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/new", http.StatusTemporaryRedirect)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{}}`)
	})

	tr := NewHTTPTransport()
	resp, err := tr.Do(context.Background(), &Request{
		Method: http.MethodGet,
		URL:    server.URL + "/old",
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.URL != server.URL+"/new" {
		t.Errorf("Expected final URL after redirect, got %q", resp.URL)
	}
}

func TestHTTPTransport_AppliesAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("Expected bearer header, got %q", got)
		}
		io.WriteString(w, `{"data":{}}`)
	}))
	defer server.Close()

	tr := NewHTTPTransport(WithAuth(auth.NewBearerAuth("token")))
	if _, err := tr.Do(context.Background(), &Request{Method: http.MethodPost, URL: server.URL}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}
