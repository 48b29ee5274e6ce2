// Package graphql provides a small client for issuing GraphQL operations
// over HTTP. A Client holds immutable default parameters; each call merges
// its own parameters on top, builds a resolved request descriptor, and
// dispatches it through an injected transport.
//
//	client := graphql.New(
//		graphql.WithClientDefaults(
//			graphql.WithBaseURL("https://api.example.com"),
//			graphql.WithHeader("authorization", "Bearer "+token),
//		),
//	)
//	data, err := client.Query(ctx, `query { viewer { login } }`)
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saturnines/graphql-request/pkg/auth"
	"github.com/saturnines/graphql-request/pkg/config"
	"github.com/saturnines/graphql-request/pkg/transport"
)

// envelope is the JSON body shape for a GraphQL HTTP response.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Client executes GraphQL operations. A Client is immutable after
// construction: concurrent calls share nothing mutable, and Defaults
// derives new clients instead of changing this one.
type Client struct {
	defaults  Options
	transport transport.Transport
	auth      auth.Handler
	doer      transport.HTTPDoer
}

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithTransport injects a custom Transport (e.g. a fake for tests).
func WithTransport(t transport.Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPDoer sets the HTTP client the default transport dispatches through.
func WithHTTPDoer(doer transport.HTTPDoer) ClientOption {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithAuthHandler sets an auth handler applied to every outgoing request.
func WithAuthHandler(handler auth.Handler) ClientOption {
	return func(c *Client) {
		c.auth = handler
	}
}

// WithClientDefaults seeds the client's default parameters.
func WithClientDefaults(opts ...Option) ClientOption {
	return func(c *Client) {
		c.defaults = c.defaults.merge(buildOptions(opts))
	}
}

// New creates a Client. Without options it dispatches through an
// *http.Client with a 30 second timeout and POSTs to <baseURL>/graphql.
func New(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		var httpOpts []transport.HTTPOption
		if c.doer != nil {
			httpOpts = append(httpOpts, transport.WithDoer(c.doer))
		}
		if c.auth != nil {
			httpOpts = append(httpOpts, transport.WithAuth(c.auth))
		}
		c.transport = transport.NewHTTPTransport(httpOpts...)
	}
	return c
}

// NewFromConfig creates a Client from a loaded ClientConfig, constructing
// the auth handler through the default registry.
func NewFromConfig(cfg *config.ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is nil")
	}

	clientOpts := []ClientOption{}
	if cfg.Auth != nil {
		handler, err := auth.NewAuthRegistry().Create(cfg.Auth)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, WithAuthHandler(handler))
	}

	defaults := []Option{
		WithBaseURL(cfg.Endpoint),
		WithURL(cfg.URL),
		WithMethod(cfg.Method),
		WithHeaders(cfg.Headers),
	}
	if cfg.MediaType != nil {
		defaults = append(defaults, WithMediaType(cfg.MediaType.Format, cfg.MediaType.Previews...))
	}
	if cfg.TimeoutSeconds > 0 {
		defaults = append(defaults, WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	clientOpts = append(clientOpts, WithClientDefaults(defaults...))

	return New(clientOpts...), nil
}

// Defaults returns a new Client whose defaults are the merge of this
// client's defaults with the given options. The receiver is not mutated,
// so a base client can safely fan out into many derived ones.
func (c *Client) Defaults(opts ...Option) *Client {
	return &Client{
		defaults:  c.defaults.merge(buildOptions(opts)),
		transport: c.transport,
		auth:      c.auth,
		doer:      c.doer,
	}
}

// Endpoint builds the fully resolved request descriptor without dispatching
// it, for callers that need to log or sign a request before sending.
func (c *Client) Endpoint(query string, opts ...Option) (*transport.Request, error) {
	merged := c.defaults.merge(buildOptions(opts))
	if query != "" {
		merged.Query = query
	}
	return resolveEndpoint(merged)
}

// Query sends a GraphQL query or mutation and returns the data payload.
func (c *Client) Query(ctx context.Context, query string, opts ...Option) (map[string]any, error) {
	return c.Do(ctx, append([]Option{WithQuery(query)}, opts...)...)
}

// QueryInto sends a GraphQL query and decodes the data payload into target.
func (c *Client) QueryInto(ctx context.Context, query string, target any, opts ...Option) error {
	raw, resp, err := c.dispatch(ctx, append([]Option{WithQuery(query)}, opts...))
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &ProtocolError{
			Status:   resp.Status,
			Message:  fmt.Sprintf("decode data payload: %v", err),
			Response: resp,
		}
	}
	return nil
}

// Do sends a request built entirely from options, for advanced callers that
// need a non-default method or raw endpoint control. The query is supplied
// via WithQuery.
func (c *Client) Do(ctx context.Context, opts ...Option) (map[string]any, error) {
	raw, resp, err := c.dispatch(ctx, opts)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ProtocolError{
			Status:   resp.Status,
			Message:  fmt.Sprintf("data payload is not an object: %v", err),
			Response: resp,
		}
	}
	return data, nil
}

// dispatch merges options over defaults, resolves the descriptor, performs
// the exchange, and normalizes the envelope. Transport failures (network,
// timeout, cancellation) are returned unchanged; no retry is attempted.
func (c *Client) dispatch(ctx context.Context, opts []Option) (json.RawMessage, *transport.Response, error) {
	merged := c.defaults.merge(buildOptions(opts))

	req, err := resolveEndpoint(merged)
	if err != nil {
		return nil, nil, err
	}

	tr := c.transport
	if merged.Request != nil && merged.Request.Doer != nil {
		httpOpts := []transport.HTTPOption{transport.WithDoer(merged.Request.Doer)}
		if c.auth != nil {
			httpOpts = append(httpOpts, transport.WithAuth(c.auth))
		}
		tr = transport.NewHTTPTransport(httpOpts...)
	}

	resp, err := tr.Do(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	raw, err := decodeEnvelope(req, resp)
	return raw, resp, err
}

// decodeEnvelope applies the failure taxonomy to a completed exchange:
// non-2xx or unparseable bodies are protocol errors, a non-empty errors
// list is a GraphQL request error, and a body with neither data nor errors
// is malformed. An explicit "data": null with no errors is a legitimate
// empty result and yields a nil payload.
func decodeEnvelope(req *transport.Request, resp *transport.Response) (json.RawMessage, error) {
	if resp.Status < 200 || resp.Status >= 300 {
		return nil, &ProtocolError{
			Status:   resp.Status,
			Message:  fmt.Sprintf("unexpected HTTP status %d", resp.Status),
			Response: resp,
		}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, &ProtocolError{
			Status:   resp.Status,
			Message:  fmt.Sprintf("response body is not a GraphQL envelope: %v", err),
			Response: resp,
		}
	}

	if len(env.Errors) > 0 {
		reqErr := &RequestError{
			Message: env.Errors[0].Message,
			Errors:  env.Errors,
			Request: req,
		}
		if reqErr.Message == "" {
			reqErr.Message = fmt.Sprintf("request failed with %d errors", len(env.Errors))
		}
		// Partial results alongside errors are a valid GraphQL outcome.
		if len(env.Data) > 0 && string(env.Data) != "null" {
			var partial map[string]any
			if json.Unmarshal(env.Data, &partial) == nil {
				reqErr.Data = partial
			}
		}
		return nil, reqErr
	}

	if env.Data == nil {
		return nil, &ProtocolError{
			Status:   resp.Status,
			Message:  "response contains neither data nor errors",
			Response: resp,
		}
	}
	if string(env.Data) == "null" {
		return nil, nil
	}
	return env.Data, nil
}
