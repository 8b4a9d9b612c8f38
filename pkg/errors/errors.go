package errors

import "fmt"

// Error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeGenerationBackend   = "GENERATION_BACKEND_ERROR"
	CodeMalformedGeneration = "MALFORMED_GENERATION_OUTPUT"
	CodeCatalogUnconfigured = "CATALOG_BACKEND_UNCONFIGURED"
	CodeNoCatalogMatches    = "NO_CATALOG_MATCHES"
)

// APIError is the only error type that crosses the service boundary. Every
// failure mode that is not one of the five coded conditions is absorbed inside
// the pipeline and degrades data instead of surfacing here.
type APIError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// NewInvalidRequest reports a client-side validation failure.
func NewInvalidRequest(message string) *APIError {
	return &APIError{
		Message:    message,
		Code:       CodeInvalidRequest,
		StatusCode: 400,
	}
}

// NewGenerationError reports a failure of the generation backend itself.
func NewGenerationError(cause error) *APIError {
	return &APIError{
		Message:    "failed to generate recommendations",
		Code:       CodeGenerationBackend,
		StatusCode: 500,
		Context: map[string]any{
			"details": cause.Error(),
		},
		Cause: cause,
	}
}

// NewMalformedOutput reports generation output that could not be parsed as a
// title list. The raw model text rides along for diagnosis.
func NewMalformedOutput(cause error, raw string) *APIError {
	return &APIError{
		Message:    "generation output was not a valid title list",
		Code:       CodeMalformedGeneration,
		StatusCode: 500,
		Context: map[string]any{
			"details":  cause.Error(),
			"response": raw,
		},
		Cause: cause,
	}
}

// NewCatalogUnconfigured reports a missing catalog backend credential.
func NewCatalogUnconfigured() *APIError {
	return &APIError{
		Message:    "movie catalog backend is not configured",
		Code:       CodeCatalogUnconfigured,
		StatusCode: 500,
	}
}

// NewNoMatches reports that no candidate title resolved against the catalog.
func NewNoMatches(candidates int) *APIError {
	return &APIError{
		Message:    "no recommendations could be matched against the catalog",
		Code:       CodeNoCatalogMatches,
		StatusCode: 404,
		Context: map[string]any{
			"details": fmt.Sprintf("none of %d generated titles resolved", candidates),
		},
	}
}
