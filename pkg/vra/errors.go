package vra

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a single error returned by the catalog service.
type APIError struct {
	Code          int    `json:"code"                    yaml:"code"`
	Message       string `json:"message"                 yaml:"message"`
	SystemMessage string `json:"systemMessage,omitempty" yaml:"systemMessage,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.SystemMessage
	}

	return fmt.Sprintf("%s (code: %d)", msg, e.Code)
}

// ResponseError represents the error response body of the catalog service,
// annotated with the HTTP status the transport observed.
type ResponseError struct {
	Errors     []APIError `json:"errors"`
	StatusCode int        `json:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	return fmt.Sprintf("multiple errors: %v", e.Errors)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// Common error codes used by the catalog service.
const (
	ErrorCodeNotFound         = 10101
	ErrorCodeNotAuthenticated = 90135
	ErrorCodeNotAuthorized    = 90136
	ErrorCodeInvalidRequest   = 10108
	ErrorCodeSystemException  = 50505
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrBaseURLRequired          = errors.New("base URL is required")
	ErrResourceOptionsExclusive = errors.New("exactly one of resource ID or resource data must be supplied")
	ErrActionNotFound           = errors.New("action not found")
	ErrResourceNotFound         = errors.New("resource not found")
	ErrCatalogItemNotFound      = errors.New("catalog item not found")
	ErrMissingLocationHeader    = errors.New("response contains no location header")
	ErrRequestFailed            = errors.New("request finished unsuccessfully")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoMoreItems              = errors.New("no more items")
)

// IsNotFound checks if the error represents a missing resource.
func IsNotFound(err error) bool {
	return matchesError(err, ErrorCodeNotFound, http.StatusNotFound) || errors.Is(err, ErrResourceNotFound)
}

// IsUnauthorized checks if the error represents a failed authentication.
func IsUnauthorized(err error) bool {
	return matchesError(err, ErrorCodeNotAuthenticated, http.StatusUnauthorized)
}

// IsForbidden checks if the error represents a denied authorization.
func IsForbidden(err error) bool {
	return matchesError(err, ErrorCodeNotAuthorized, http.StatusForbidden)
}

func matchesError(err error, code int, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}

	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		if first := errResp.FirstError(); first != nil && first.Code == code {
			return true
		}

		return errResp.StatusCode == status
	}

	return false
}

// ParseResponseError builds a *ResponseError from a non-2xx response.
// Bodies that are not a recognizable error document are reduced to a
// single error derived from the HTTP status.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	errResp := &ResponseError{StatusCode: statusCode}

	if len(body) > 0 {
		err := json.Unmarshal(body, errResp)
		if err == nil && len(errResp.Errors) > 0 {
			return errResp
		}
	}

	errResp.Errors = []APIError{
		{
			Code:    statusCode,
			Message: http.StatusText(statusCode),
		},
	}

	return errResp
}
