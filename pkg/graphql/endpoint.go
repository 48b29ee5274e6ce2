package graphql

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/saturnines/graphql-request/pkg/errors"
	"github.com/saturnines/graphql-request/pkg/transport"
)

// supportedMethods is the fixed set of HTTP methods a descriptor may use.
var supportedMethods = map[string]struct{}{
	http.MethodDelete: {},
	http.MethodGet:    {},
	http.MethodHead:   {},
	http.MethodPatch:  {},
	http.MethodPost:   {},
	http.MethodPut:    {},
}

// placeholderPattern matches {name} segments in a URL template.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// graphqlPayload is the JSON body shape for a GraphQL HTTP request.
type graphqlPayload struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// resolveEndpoint turns merged Options into a fully resolved descriptor.
//
// Variables matching a {placeholder} in the URL are routed into the URL and
// removed from the variable set; placeholder routing wins. Remaining
// variables go into the JSON body for body-carrying methods, or into the
// query string (JSON-encoded) for GET and HEAD. Typed configuration is never
// read from the Variables map, so a variable named "headers" is just a
// variable.
func resolveEndpoint(o Options) (*transport.Request, error) {
	method := strings.ToUpper(o.Method)
	if method == "" {
		method = http.MethodPost
	}
	if _, ok := supportedMethods[method]; !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unsupported method: %s", o.Method),
			errors.ErrConfiguration,
			"resolve endpoint",
		)
	}

	rawURL := o.URL
	if rawURL == "" {
		rawURL = "/graphql"
	}

	vars := make(map[string]any, len(o.Variables))
	for k, v := range o.Variables {
		vars[k] = v
	}

	var missing string
	resolved := placeholderPattern.ReplaceAllStringFunc(rawURL, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			missing = name
			return match
		}
		delete(vars, name)
		return url.PathEscape(fmt.Sprintf("%v", value))
	})
	if missing != "" {
		return nil, errors.WrapError(
			fmt.Errorf("no value for URL placeholder {%s}", missing),
			errors.ErrConfiguration,
			"resolve endpoint",
		)
	}

	if !strings.Contains(resolved, "://") {
		if o.BaseURL == "" {
			return nil, errors.WrapError(
				fmt.Errorf("relative url %q requires a base URL", resolved),
				errors.ErrConfiguration,
				"resolve endpoint",
			)
		}
		resolved = strings.TrimRight(o.BaseURL, "/") + "/" + strings.TrimLeft(resolved, "/")
	}

	headers := make(map[string]string, len(o.Headers)+2)
	for k, v := range o.Headers {
		headers[strings.ToLower(k)] = v
	}
	// An explicit accept header wins over media type derivation.
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = acceptHeader(o.MediaType)
	}

	var timeout time.Duration
	if o.Request != nil {
		timeout = o.Request.Timeout
	}

	if method == http.MethodGet || method == http.MethodHead {
		query := url.Values{}
		if o.Query != "" {
			query.Set("query", o.Query)
		}
		if len(vars) > 0 {
			encoded, err := json.Marshal(vars)
			if err != nil {
				return nil, errors.WrapError(err, errors.ErrConfiguration, "encode variables")
			}
			query.Set("variables", string(encoded))
		}
		if encoded := query.Encode(); encoded != "" {
			sep := "?"
			if strings.Contains(resolved, "?") {
				sep = "&"
			}
			resolved += sep + encoded
		}
		return &transport.Request{
			Method:  method,
			URL:     resolved,
			Headers: headers,
			Timeout: timeout,
		}, nil
	}

	body, err := json.Marshal(graphqlPayload{Query: o.Query, Variables: vars})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "marshal request body")
	}
	if _, ok := headers["content-type"]; !ok {
		headers["content-type"] = "application/json"
	}

	return &transport.Request{
		Method:  method,
		URL:     resolved,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
	}, nil
}

// acceptHeader derives the accept header from a MediaType. A bare format
// becomes application/<format>+json; a format containing "/" is used
// verbatim; each preview adds application/vnd.<preview>-preview+json.
func acceptHeader(m *MediaType) string {
	base := "application/json"
	if m != nil && m.Format != "" {
		if strings.Contains(m.Format, "/") {
			base = m.Format
		} else {
			base = "application/" + m.Format + "+json"
		}
	}
	parts := []string{base}
	if m != nil {
		for _, preview := range m.Previews {
			parts = append(parts, fmt.Sprintf("application/vnd.%s-preview+json", preview))
		}
	}
	return strings.Join(parts, ", ")
}
