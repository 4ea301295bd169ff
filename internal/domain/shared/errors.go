package shared

import "errors"

// ErrorKind is the stable, caller-facing classification of a failure
type ErrorKind string

const (
	KindValidation  ErrorKind = "VALIDATION"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindConflict    ErrorKind = "CONFLICT"
	KindUnsupported ErrorKind = "UNSUPPORTED"
	KindInternal    ErrorKind = "INTERNAL"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Kind returns the error kind derived from the code
func (e *DomainError) Kind() ErrorKind {
	if kind, ok := codeKinds[e.Code]; ok {
		return kind
	}
	return KindConflict
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across the ledger contexts
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidState       = "INVALID_STATE"
	CodeInvalidApproval    = "INVALID_APPROVAL"
	CodeOverpayment        = "OVERPAYMENT"
	CodeInvalidAccounts    = "INVALID_ACCOUNTS"
	CodeCounterpartyMatch  = "COUNTERPARTY_MISMATCH"
	CodeAssetAlreadyLinked = "ASSET_ALREADY_LINKED"
	CodeUnsupportedMethod  = "UNSUPPORTED_METHOD"
	CodeConcurrency        = "CONCURRENCY_CONFLICT"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
)

var codeKinds = map[string]ErrorKind{
	CodeValidation:        KindValidation,
	CodeNotFound:          KindNotFound,
	CodeUnsupportedMethod: KindUnsupported,
	CodeUnauthorized:      KindValidation,
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrency, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NewValidationError creates a validation error for a missing or malformed field
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates a not-found error naming the missing resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}

// KindOf classifies any error. Non-domain errors are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind()
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
