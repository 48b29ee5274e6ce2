package config

// ClientConfig represents the full YAML config for one GraphQL client
type ClientConfig struct {
	Name           string            `yaml:"name,omitempty"`            // Optional identifier for logs and tooling
	Endpoint       string            `yaml:"endpoint"`                  // Required base URL of the API
	URL            string            `yaml:"url,omitempty"`             // Path of the GraphQL endpoint (default /graphql)
	Method         string            `yaml:"method,omitempty"`          // HTTP method (default POST)
	Headers        map[string]string `yaml:"headers,omitempty"`         // Default headers, lowercase keys
	MediaType      *MediaType        `yaml:"media_type,omitempty"`      // Optional accept header configuration
	Auth           *Auth             `yaml:"auth,omitempty"`            // Optional authentication
	TimeoutSeconds int               `yaml:"timeout_seconds,omitempty"` // Per request timeout (default 30)
}

// MediaType configures how the accept header is derived
type MediaType struct {
	Format   string   `yaml:"format,omitempty"`   // Response format, e.g. "json"
	Previews []string `yaml:"previews,omitempty"` // Opt-in preview capability flags
}

// Auth defines auth methods.
type Auth struct {
	Type   AuthType    `yaml:"type"`              // Required authentication type
	Basic  *BasicAuth  `yaml:"basic,omitempty"`   // Basic authentication
	APIKey *APIKeyAuth `yaml:"api_key,omitempty"` // API key authentication
	Bearer *BearerAuth `yaml:"bearer,omitempty"`  // Bearer token authentication
}

// AuthType defines current supported authentication types
type AuthType string

const (
	AuthTypeBasic  AuthType = "basic"
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeBearer AuthType = "bearer"
)

// BasicAuth contains auth credentials for the api
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// APIKeyAuth contains API key details
type APIKeyAuth struct {
	Header     string `yaml:"header,omitempty"`      // Header name
	QueryParam string `yaml:"query_param,omitempty"` // Query parameter name
	Value      string `yaml:"value"`                 // API key value
}

// BearerAuth contains the bearer token
type BearerAuth struct {
	Token string `yaml:"token"`
}
