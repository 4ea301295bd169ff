package approval

import (
	"time"

	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/shopspring/decimal"
)

// CreateApprovalRequest represents a request for a new pre-authorization
type CreateApprovalRequest struct {
	Category    string           `json:"approval_for" binding:"required"`
	Description string           `json:"description" binding:"max=1000"`
	MinAmount   *decimal.Decimal `json:"min_amount"`
	MaxAmount   *decimal.Decimal `json:"max_amount"`
}

// DecisionRequest carries the approver's remarks
type DecisionRequest struct {
	Remarks string `json:"remarks" binding:"max=1000"`
}

// ApprovalResponse represents an approval in API responses
type ApprovalResponse struct {
	ApprovalID  string           `json:"approval_id"`
	Category    string           `json:"approval_for"`
	Status      string           `json:"status"`
	Description string           `json:"description"`
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount   *decimal.Decimal `json:"max_amount,omitempty"`
	RequestedBy string           `json:"requested_by"`
	DecidedBy   string           `json:"decided_by,omitempty"`
	DecidedAt   *time.Time       `json:"decided_at,omitempty"`
	Remarks     string           `json:"remarks,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToApprovalResponse converts a domain Approval to ApprovalResponse
func ToApprovalResponse(a *approval.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID:  a.ApprovalID,
		Category:    string(a.Category),
		Status:      string(a.Status),
		Description: a.Description,
		MinAmount:   a.MinAmount,
		MaxAmount:   a.MaxAmount,
		RequestedBy: a.CreatedBy,
		DecidedBy:   a.DecidedBy,
		DecidedAt:   a.DecidedAt,
		Remarks:     a.Remarks,
		CreatedAt:   a.CreatedAt,
	}
}
