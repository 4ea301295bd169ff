package dto

import (
	"net/http"

	"github.com/bizops/ledger/internal/domain/shared"
)

// Transport error codes. Domain errors keep their own codes
// (shared.Code*) on the wire.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request binding fails validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the bearer token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenRevoked is used when the bearer token was revoked
	ErrCodeTokenRevoked = "ERR_TOKEN_REVOKED"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeNotFound is used for unmatched routes
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeForbidden is used when the caller is authenticated or known but not allowed
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Domain codes
// missing here fall back to their error kind.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeForbidden:       http.StatusForbidden,

	shared.CodeUnauthorized:     http.StatusUnauthorized,
	shared.CodeAlreadyExists:    http.StatusConflict,
	shared.CodeConcurrency:      http.StatusConflict,
	shared.CodeDuplicateRequest: http.StatusConflict,
}

// kindHTTPStatus maps domain error kinds to HTTP status codes. Business rule
// violations are client errors.
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation:  http.StatusBadRequest,
	shared.KindNotFound:    http.StatusNotFound,
	shared.KindConflict:    http.StatusBadRequest,
	shared.KindUnsupported: http.StatusBadRequest,
	shared.KindInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the code is unknown.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainHTTPStatus returns the HTTP status for a domain error
func DomainHTTPStatus(err *shared.DomainError) int {
	if status, ok := ErrorCodeHTTPStatus[err.Code]; ok {
		return status
	}
	if status, ok := kindHTTPStatus[err.Kind()]; ok {
		return status
	}
	return http.StatusInternalServerError
}
