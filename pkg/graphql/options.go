package graphql

import (
	"strings"
	"time"

	"github.com/saturnines/graphql-request/pkg/transport"
)

// MediaType configures how the accept header is derived.
type MediaType struct {
	Format   string   // Response format, e.g. "json" or a full media type
	Previews []string // Opt-in preview capability flags
}

// RequestOptions carries transport-level knobs for a single call.
type RequestOptions struct {
	Doer    transport.HTTPDoer // Overrides the client's HTTP doer for this call
	Timeout time.Duration      // Per request timeout, enforced by the transport
}

// Options is the parameters object merged under every call. Known
// configuration lives in typed fields; everything else goes into Variables,
// which is passed through to the server as GraphQL variables.
type Options struct {
	BaseURL   string
	URL       string
	Method    string
	Query     string
	Headers   map[string]string
	MediaType *MediaType
	Request   *RequestOptions
	Variables map[string]any
}

// Option configures the parameters for a call or a derived client.
type Option func(*Options)

// WithBaseURL sets the base URL relative URLs are resolved against.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithURL sets the endpoint URL (absolute, or relative to the base URL).
func WithURL(url string) Option {
	return func(o *Options) {
		o.URL = url
	}
}

// WithMethod sets the HTTP method.
func WithMethod(method string) Option {
	return func(o *Options) {
		o.Method = method
	}
}

// WithQuery sets the GraphQL query or mutation string.
func WithQuery(query string) Option {
	return func(o *Options) {
		o.Query = query
	}
}

// WithHeader adds a single header. Keys are lowercased.
func WithHeader(key, value string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[strings.ToLower(key)] = value
	}
}

// WithHeaders adds multiple headers. Keys are lowercased.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		for k, v := range headers {
			o.Headers[strings.ToLower(k)] = v
		}
	}
}

// WithMediaType sets the response format and preview flags.
func WithMediaType(format string, previews ...string) Option {
	return func(o *Options) {
		o.MediaType = &MediaType{Format: format, Previews: previews}
	}
}

// WithTimeout sets a per request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if o.Request == nil {
			o.Request = &RequestOptions{}
		}
		o.Request.Timeout = timeout
	}
}

// WithDoer overrides the HTTP doer for this call only.
func WithDoer(doer transport.HTTPDoer) Option {
	return func(o *Options) {
		if o.Request == nil {
			o.Request = &RequestOptions{}
		}
		o.Request.Doer = doer
	}
}

// WithVariable sets a single GraphQL variable.
func WithVariable(key string, value any) Option {
	return func(o *Options) {
		if o.Variables == nil {
			o.Variables = make(map[string]any)
		}
		o.Variables[key] = value
	}
}

// WithVariables sets multiple GraphQL variables.
func WithVariables(variables map[string]any) Option {
	return func(o *Options) {
		if o.Variables == nil {
			o.Variables = make(map[string]any)
		}
		for k, v := range variables {
			o.Variables[k] = v
		}
	}
}

// buildOptions collects a list of Option funcs into an Options value.
func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// merge combines overrides on top of o and returns a fresh Options value.
// Neither input is mutated, which is what keeps derived clients independent.
//
// Per-key strategy: scalar fields are replaced when the override sets them;
// Headers and Variables are merged key-wise with the override winning;
// MediaType.Format is replaced when set, Previews are appended and deduped;
// RequestOptions fields are overridden individually.
func (o Options) merge(over Options) Options {
	out := o

	if over.BaseURL != "" {
		out.BaseURL = over.BaseURL
	}
	if over.URL != "" {
		out.URL = over.URL
	}
	if over.Method != "" {
		out.Method = over.Method
	}
	if over.Query != "" {
		out.Query = over.Query
	}

	out.Headers = mergeStringMaps(o.Headers, over.Headers)
	out.Variables = mergeVariableMaps(o.Variables, over.Variables)

	out.MediaType = mergeMediaTypes(o.MediaType, over.MediaType)
	out.Request = mergeRequestOptions(o.Request, over.Request)

	return out
}

func mergeStringMaps(base, over map[string]string) map[string]string {
	if base == nil && over == nil {
		return nil
	}
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[strings.ToLower(k)] = v
	}
	for k, v := range over {
		out[strings.ToLower(k)] = v
	}
	return out
}

func mergeVariableMaps(base, over map[string]any) map[string]any {
	if base == nil && over == nil {
		return nil
	}
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func mergeMediaTypes(base, over *MediaType) *MediaType {
	if base == nil && over == nil {
		return nil
	}
	out := &MediaType{}
	if base != nil {
		out.Format = base.Format
		out.Previews = appendDedupe(nil, base.Previews)
	}
	if over != nil {
		if over.Format != "" {
			out.Format = over.Format
		}
		out.Previews = appendDedupe(out.Previews, over.Previews)
	}
	return out
}

func mergeRequestOptions(base, over *RequestOptions) *RequestOptions {
	if base == nil && over == nil {
		return nil
	}
	out := &RequestOptions{}
	if base != nil {
		*out = *base
	}
	if over != nil {
		if over.Doer != nil {
			out.Doer = over.Doer
		}
		if over.Timeout > 0 {
			out.Timeout = over.Timeout
		}
	}
	return out
}

// appendDedupe appends items preserving first-seen order. Append plus dedupe
// is the one previews strategy under which defaults chaining stays associative.
func appendDedupe(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range base {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range extra {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
