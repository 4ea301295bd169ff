// Package approval models the pre-authorizations that gate financial
// transactions.
package approval

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category is the purpose an approval was granted for
type Category string

const (
	CategoryAsset           Category = "Asset"
	CategoryVendorPayment   Category = "Vendor Payment"
	CategoryCustomerPayment Category = "Customer Payment"
	CategorySalary          Category = "Salary"
	CategoryLiability       Category = "Liability"
	CategoryRefund          Category = "Refund"
	CategoryInvestment      Category = "Investment"
	CategoryMaintenance     Category = "Maintenance"
	CategoryRepair          Category = "Repair"
	CategoryGeneral         Category = "General"
)

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryAsset, CategoryVendorPayment, CategoryCustomerPayment,
		CategorySalary, CategoryLiability, CategoryRefund, CategoryInvestment,
		CategoryMaintenance, CategoryRepair, CategoryGeneral:
		return true
	}
	return false
}

// Status represents the decision state of an approval
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Approval is a permission record scoped to a category and an amount range
type Approval struct {
	shared.BaseAggregateRoot
	ApprovalID  string           `json:"approval_id"`
	Category    Category         `json:"approval_for"`
	Status      Status           `json:"status"`
	Description string           `json:"description"`
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount   *decimal.Decimal `json:"max_amount,omitempty"`
	DecidedBy   string           `json:"decided_by,omitempty"`
	DecidedAt   *time.Time       `json:"decided_at,omitempty"`
	Remarks     string           `json:"remarks,omitempty"`
}

// NewApproval creates a pending approval
func NewApproval(approvalID string, category Category, description string, minAmount, maxAmount *decimal.Decimal, requestedBy string) (*Approval, error) {
	if approvalID == "" {
		return nil, shared.NewValidationError("Approval ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid approval category: %s", category))
	}
	if minAmount != nil && minAmount.IsNegative() {
		return nil, shared.NewValidationError("Minimum amount cannot be negative")
	}
	if minAmount != nil && maxAmount != nil && maxAmount.LessThan(*minAmount) {
		return nil, shared.NewValidationError("Maximum amount cannot be below minimum amount")
	}
	return &Approval{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(requestedBy),
		ApprovalID:        approvalID,
		Category:          category,
		Status:            StatusPending,
		Description:       strings.TrimSpace(description),
		MinAmount:         minAmount,
		MaxAmount:         maxAmount,
	}, nil
}

// Approve grants the approval
func (a *Approval) Approve(by, remarks string, now time.Time) error {
	return a.decide(StatusApproved, by, remarks, now)
}

// Reject refuses the approval
func (a *Approval) Reject(by, remarks string, now time.Time) error {
	if strings.TrimSpace(remarks) == "" {
		return shared.NewValidationError("Rejection remarks are required")
	}
	return a.decide(StatusRejected, by, remarks, now)
}

func (a *Approval) decide(status Status, by, remarks string, now time.Time) error {
	if a.Status != StatusPending {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Approval %s is already %s", a.ApprovalID, a.Status))
	}
	a.Status = status
	a.DecidedBy = by
	a.DecidedAt = &now
	a.Remarks = strings.TrimSpace(remarks)
	a.Touch(now)
	a.IncrementVersion()
	return nil
}

// Covers reports whether amount falls inside the approved range
func (a *Approval) Covers(amount decimal.Decimal) bool {
	if a.MinAmount != nil && amount.LessThan(*a.MinAmount) {
		return false
	}
	if a.MaxAmount != nil && amount.GreaterThan(*a.MaxAmount) {
		return false
	}
	return true
}

// Policy describes which approval categories may authorize a purpose.
// A non-empty Allow list is exhaustive; Deny is consulted otherwise.
type Policy struct {
	Allow []Category
	Deny  []Category
}

// Permits reports whether c satisfies the policy
func (p Policy) Permits(c Category) bool {
	if len(p.Allow) > 0 {
		return slices.Contains(p.Allow, c)
	}
	return c.IsValid() && !slices.Contains(p.Deny, c)
}

// ErrInvalidApproval is returned for any approval that cannot authorize a transaction
var ErrInvalidApproval = shared.NewDomainError(shared.CodeInvalidApproval, "Invalid or disallowed approval")

// Authorize checks that the approval is Approved, category-compatible with
// policy and covers amount
func (a *Approval) Authorize(policy Policy, amount decimal.Decimal) error {
	if a.Status != StatusApproved {
		return shared.NewDomainError(shared.CodeInvalidApproval, fmt.Sprintf("Invalid or disallowed approval: %s is %s", a.ApprovalID, a.Status))
	}
	if !policy.Permits(a.Category) {
		return shared.NewDomainError(shared.CodeInvalidApproval, fmt.Sprintf("Invalid or disallowed approval: %s is for %s", a.ApprovalID, a.Category))
	}
	if !a.Covers(amount) {
		return shared.NewDomainError(shared.CodeInvalidApproval, fmt.Sprintf("Invalid or disallowed approval: amount is outside the range approved by %s", a.ApprovalID))
	}
	return nil
}
