package handler

import "github.com/bizops/ledger/internal/interfaces/http/dto"

// APIResponse documents the envelope every ledger endpoint answers with.
// Meta is only set on list endpoints.
// @Description Ledger response envelope
type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse documents a failed call. Error.Code is a domain code such
// as OVERPAYMENT or INVALID_APPROVAL, or an ERR_ transport code.
// @Description Ledger error envelope
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
