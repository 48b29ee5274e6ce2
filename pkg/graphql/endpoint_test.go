package graphql

import (
	"net/url"
	"strings"
	"testing"

	"github.com/saturnines/graphql-request/pkg/errors"
)

func TestResolveEndpoint_DefaultsToPostGraphQL(t *testing.T) {
	req, err := resolveEndpoint(Options{
		BaseURL: "https://api.example.com",
		Query:   "query { viewer { login } }",
	})
	if err != nil {
		t.Fatalf("resolveEndpoint failed: %v", err)
	}

	if req.Method != "POST" {
		t.Errorf("Expected method POST, got %q", req.Method)
	}
	if req.URL != "https://api.example.com/graphql" {
		t.Errorf("Expected URL https://api.example.com/graphql, got %q", req.URL)
	}

	want := `{"query":"query { viewer { login } }","variables":{}}`
	if string(req.Body) != want {
		t.Errorf("Expected body %s, got %s", want, req.Body)
	}
	if req.Headers["content-type"] != "application/json" {
		t.Errorf("Expected JSON content type, got %q", req.Headers["content-type"])
	}
}

func TestResolveEndpoint_VariablesPassThrough(t *testing.T) {
	req, err := resolveEndpoint(Options{
		BaseURL:   "https://api.example.com",
		Query:     "query ($login: String!) { user(login: $login) { id } }",
		Variables: map[string]any{"login": "octocat"},
	})
	if err != nil {
		t.Fatalf("resolveEndpoint failed: %v", err)
	}

	if !strings.Contains(string(req.Body), `"variables":{"login":"octocat"}`) {
		t.Errorf("Expected variables in body, got %s", req.Body)
	}
	if !strings.Contains(string(req.Body), `"query":"query ($login: String!) { user(login: $login) { id } }"`) {
		t.Errorf("Expected literal query in body, got %s", req.Body)
	}
}

func TestResolveEndpoint_PlaceholderRouting(t *testing.T) {
	req, err := resolveEndpoint(Options{
		BaseURL: "https://api.example.com",
		URL:     "/orgs/{org}/graphql",
		Query:   "query { viewer { login } }",
		Variables: map[string]any{
			"org":   "acme corp",
			"login": "octocat",
		},
	})
	if err != nil {
		t.Fatalf("resolveEndpoint failed: %v", err)
	}

	if req.URL != "https://api.example.com/orgs/acme%20corp/graphql" {
		t.Errorf("Expected placeholder substituted and escaped, got %q", req.URL)
	}

	// The routed variable must not also appear in the body.
	if strings.Contains(string(req.Body), "org") {
		t.Errorf("Expected org removed from variables, got body %s", req.Body)
	}
	if !strings.Contains(string(req.Body), `"login":"octocat"`) {
		t.Errorf("Expected untouched variable kept, got body %s", req.Body)
	}
}

func TestResolveEndpoint_MissingPlaceholder(t *testing.T) {
	_, err := resolveEndpoint(Options{
		BaseURL: "https://api.example.com",
		URL:     "/orgs/{org}/graphql",
		Query:   "query { viewer { login } }",
	})
	if err == nil {
		t.Fatal("Expected error for unresolved placeholder")
	}
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestResolveEndpoint_UnsupportedMethod(t *testing.T) {
	_, err := resolveEndpoint(Options{
		BaseURL: "https://api.example.com",
		Method:  "TRACE",
	})
	if err == nil {
		t.Fatal("Expected error for unsupported method")
	}
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestResolveEndpoint_RelativeURLNeedsBase(t *testing.T) {
	_, err := resolveEndpoint(Options{Query: "query { x }"})
	if err == nil {
		t.Fatal("Expected error for relative URL without base")
	}
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestResolveEndpoint_AbsoluteURLSkipsBase(t *testing.T) {
	req, err := resolveEndpoint(Options{
		BaseURL: "https://api.example.com",
		URL:     "https://other.example.com/graphql",
		Query:   "query { x }",
	})
	if err != nil {
		t.Fatalf("resolveEndpoint failed: %v", err)
	}
	if req.URL != "https://other.example.com/graphql" {
		t.Errorf("Expected absolute URL untouched, got %q", req.URL)
	}
}

func TestResolveEndpoint_GetRoutesIntoQueryString(t *testing.T) {
	req, err := resolveEndpoint(Options{
		BaseURL:   "https://api.example.com",
		Method:    "GET",
		Query:     "query ($n: Int) { items(first: $n) { id } }",
		Variables: map[string]any{"n": 5},
	})
	if err != nil {
		t.Fatalf("resolveEndpoint failed: %v", err)
	}

	if req.Body != nil {
		t.Errorf("Expected no body for GET, got %s", req.Body)
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		t.Fatalf("Failed to parse URL %q: %v", req.URL, err)
	}
	if got := parsed.Query().Get("query"); got != "query ($n: Int) { items(first: $n) { id } }" {
		t.Errorf("Expected query in query string, got %q", got)
	}
	if got := parsed.Query().Get("variables"); got != `{"n":5}` {
		t.Errorf("Expected JSON variables in query string, got %q", got)
	}
}

func TestAcceptHeader(t *testing.T) {
	tests := []struct {
		name  string
		media *MediaType
		want  string
	}{
		{
			name:  "nil media type",
			media: nil,
			want:  "application/json",
		},
		{
			name:  "bare format",
			media: &MediaType{Format: "vnd.api.v2"},
			want:  "application/vnd.api.v2+json",
		},
		{
			name:  "full media type used verbatim",
			media: &MediaType{Format: "text/plain"},
			want:  "text/plain",
		},
		{
			name:  "previews appended",
			media: &MediaType{Previews: []string{"corsair", "mercy"}},
			want:  "application/json, application/vnd.corsair-preview+json, application/vnd.mercy-preview+json",
		},
		{
			name:  "format and previews",
			media: &MediaType{Format: "vnd.api.v2", Previews: []string{"corsair"}},
			want:  "application/vnd.api.v2+json, application/vnd.corsair-preview+json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptHeader(tt.media); got != tt.want {
				t.Errorf("acceptHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveEndpoint_ExplicitAcceptWins(t *testing.T) {
	req, err := resolveEndpoint(Options{
		BaseURL:   "https://api.example.com",
		Query:     "query { x }",
		Headers:   map[string]string{"accept": "application/custom"},
		MediaType: &MediaType{Previews: []string{"corsair"}},
	})
	if err != nil {
		t.Fatalf("resolveEndpoint failed: %v", err)
	}
	if req.Headers["accept"] != "application/custom" {
		t.Errorf("Expected explicit accept header kept, got %q", req.Headers["accept"])
	}
}
