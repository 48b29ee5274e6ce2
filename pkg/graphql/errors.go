package graphql

import (
	"fmt"

	"github.com/saturnines/graphql-request/pkg/errors"
	"github.com/saturnines/graphql-request/pkg/transport"
)

// Location is a line/column pair pointing into the query source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError represents a single error returned in a GraphQL response.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	Locations  []Location     `json:"locations,omitempty"`
}

// ProtocolError means the HTTP response was not a usable GraphQL envelope:
// an unexpected status, an unparseable body, or a body with neither data nor
// errors. The raw response is attached for inspection.
type ProtocolError struct {
	Status   int
	Message  string
	Response *transport.Response
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("graphql: %s (HTTP %d)", e.Message, e.Status)
}

// Is makes ProtocolError match errors.ErrProtocol via errors.Is.
func (e *ProtocolError) Is(target error) bool {
	return target == errors.ErrProtocol
}

// RequestError means the server returned a well-formed envelope with a
// non-empty errors list. Partial data and the resolved request descriptor
// are kept so callers can diagnose and reproduce the failure.
type RequestError struct {
	Message string
	Errors  []GraphQLError
	Data    map[string]any
	Request *transport.Request
}

func (e *RequestError) Error() string {
	return "graphql: " + e.Message
}

// Is makes RequestError match errors.ErrGraphQL via errors.Is.
func (e *RequestError) Is(target error) bool {
	return target == errors.ErrGraphQL
}
