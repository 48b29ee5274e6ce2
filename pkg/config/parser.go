package config

import (
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks a parsed config and reports problems
type Validator interface {
	Validate(cfg *ClientConfig) []ValidationError
}

// DefaultValueSetter handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(cfg *ClientConfig)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// ClientLoader loads ClientConfig from YAML
type ClientLoader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewClientLoader creates a new ClientLoader with the given components
func NewClientLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *ClientLoader {
	return &ClientLoader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// Load a client config from a YAML file
func (l *ClientLoader) Load(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *ClientLoader) Parse(data []byte) (*ClientConfig, error) {
	// Expand variables if an expander is configured
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Set default values if a default setter is configured
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	// Validate the client configuration
	var allErrors []ValidationError
	for _, validator := range l.validators {
		errors := validator.Validate(&cfg)
		allErrors = append(allErrors, errors...)
	}

	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}

	return &cfg, nil
}

// ClientDefaults implements DefaultValueSetter for ClientConfig
type ClientDefaults struct{}

// SetDefaults sets default values for ClientConfig
func (d *ClientDefaults) SetDefaults(cfg *ClientConfig) {
	if cfg.Method == "" {
		cfg.Method = http.MethodPost
	}
	if cfg.URL == "" {
		cfg.URL = "/graphql"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
}

// ClientValidator implements Validator for ClientConfig
type ClientValidator struct{}

// Validate checks the required fields and auth shape
func (v *ClientValidator) Validate(cfg *ClientConfig) []ValidationError {
	var errs []ValidationError

	if cfg.Endpoint == "" {
		errs = append(errs, ValidationError{Field: "endpoint", Message: "endpoint is required"})
	}

	switch cfg.Method {
	case http.MethodDelete, http.MethodGet, http.MethodHead,
		http.MethodPatch, http.MethodPost, http.MethodPut:
	default:
		errs = append(errs, ValidationError{
			Field:   "method",
			Message: fmt.Sprintf("unsupported method: %s", cfg.Method),
		})
	}

	if cfg.Auth != nil {
		switch cfg.Auth.Type {
		case AuthTypeBasic:
			if cfg.Auth.Basic == nil {
				errs = append(errs, ValidationError{Field: "auth.basic", Message: "basic auth configuration is required"})
			}
		case AuthTypeAPIKey:
			if cfg.Auth.APIKey == nil {
				errs = append(errs, ValidationError{Field: "auth.api_key", Message: "api key configuration is required"})
			}
		case AuthTypeBearer:
			if cfg.Auth.Bearer == nil {
				errs = append(errs, ValidationError{Field: "auth.bearer", Message: "bearer token configuration is required"})
			}
		default:
			errs = append(errs, ValidationError{
				Field:   "auth.type",
				Message: fmt.Sprintf("unsupported auth type: %s", cfg.Auth.Type),
			})
		}
	}

	return errs
}
