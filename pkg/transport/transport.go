package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/saturnines/graphql-request/pkg/auth"
)

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Request is a fully resolved descriptor, ready to dispatch.
// Method and URL are always populated by the time a Request reaches a Transport.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// Response is the normalized result of a single HTTP exchange.
// URL is the final URL after any redirects; header keys are lowercased.
type Response struct {
	Status  int
	URL     string
	Headers map[string]string
	Body    []byte
}

// Transport performs one HTTP round trip for a resolved Request.
// Implementations are injected into the client, so tests can swap in
// a fake without touching the network.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport dispatches Requests through an HTTPDoer
// (e.g. *http.Client or anything wrapping one).
type HTTPTransport struct {
	doer HTTPDoer
	auth auth.Handler
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithDoer swaps the underlying HTTPDoer.
func WithDoer(doer HTTPDoer) HTTPOption {
	return func(t *HTTPTransport) {
		t.doer = doer
	}
}

// WithAuth sets an auth handler applied to every outgoing request.
func WithAuth(handler auth.Handler) HTTPOption {
	return func(t *HTTPTransport) {
		t.auth = handler
	}
}

// NewHTTPTransport creates an HTTPTransport. Without options it uses
// an *http.Client with a 30 second timeout.
func NewHTTPTransport(opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		doer: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do performs the exchange. Errors from the underlying doer are returned
// unchanged so callers can branch on the original error value.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// If body is present, assume JSON content type
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if t.auth != nil {
		if err := t.auth.ApplyAuth(httpReq); err != nil {
			return nil, err
		}
	}

	resp, err := t.doer.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		headers[strings.ToLower(key)] = resp.Header.Get(key)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		Status:  resp.StatusCode,
		URL:     finalURL,
		Headers: headers,
		Body:    raw,
	}, nil
}
