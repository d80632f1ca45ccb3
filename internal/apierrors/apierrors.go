// Package apierrors contains the error types returned by the services and
// translated into HTTP responses at the handlers.
package apierrors

import "net/http"

// APIError represents an error that maps directly to an HTTP response.
type APIError struct {
	Detail         string `json:"detail"`
	httpStatusCode int
}

// APIErrorOption determines the Functional Options used to create a new APIError.
type APIErrorOption func(apiError *APIError)

// NewAPIError creates a new APIError using the given options.
func NewAPIError(opts ...APIErrorOption) *APIError {
	apiError := &APIError{httpStatusCode: http.StatusInternalServerError}
	for _, opt := range opts {
		opt(apiError)
	}
	return apiError
}

// WithDetail determines the user-visible detail of the error.
func WithDetail(detail string) APIErrorOption {
	return func(apiError *APIError) {
		apiError.Detail = detail
	}
}

// WithHTTPStatusCode determines the HTTP status code associated to the error.
func WithHTTPStatusCode(statusCode int) APIErrorOption {
	return func(apiError *APIError) {
		apiError.httpStatusCode = statusCode
	}
}

// HTTPStatusCode gets the HTTP status code associated to the error.
func (a APIError) HTTPStatusCode() int {
	return a.httpStatusCode
}

func (a APIError) Error() string {
	return a.Detail
}

// ValidationError represents an error caused by an invalid field in a request.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field string, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (v ValidationError) Error() string {
	return v.Field + " " + v.Reason
}
