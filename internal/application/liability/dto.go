package liability

import (
	"time"

	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/shopspring/decimal"
)

// CreateLiabilityRequest represents a request to record a new liability
type CreateLiabilityRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestType string          `json:"interest_type" binding:"required,oneof=Simple Compound None"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	PaymentTerms string          `json:"payment_terms" binding:"required,oneof=Monthly Quarterly Yearly One-time"`
	StartDate    time.Time       `json:"start_date" binding:"required"`
	DueDate      time.Time       `json:"due_date" binding:"required"`
	AccountID    string          `json:"account_id" binding:"max=32"`
	VendorID     string          `json:"vendor_id" binding:"max=32"`
	ApprovalID   string          `json:"approval_id" binding:"max=32"`
}

func (r CreateLiabilityRequest) toTerms() liability.Terms {
	return liability.Terms{
		Name:         r.Name,
		Principal:    r.Principal,
		InterestType: liability.InterestType(r.InterestType),
		InterestRate: r.InterestRate,
		PaymentTerms: liability.PaymentTerms(r.PaymentTerms),
		StartDate:    r.StartDate,
		DueDate:      r.DueDate,
		AccountID:    r.AccountID,
		VendorID:     r.VendorID,
		ApprovalID:   r.ApprovalID,
	}
}

// ListFilter holds the query parameters for listing liabilities
type ListFilter struct {
	VendorID string `form:"vendor_id"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LiabilityResponse represents a liability with its derived totals
type LiabilityResponse struct {
	LiabilityID  string          `json:"liability_id"`
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"principal"`
	InterestType string          `json:"interest_type"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	PaymentTerms string          `json:"payment_terms"`
	StartDate    time.Time       `json:"start_date"`
	DueDate      time.Time       `json:"due_date"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	Settled      bool            `json:"settled"`
	AccountID    string          `json:"account_id,omitempty"`
	VendorID     string          `json:"vendor_id,omitempty"`
	ApprovalID   string          `json:"approval_id,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToLiabilityResponse converts a domain Liability, recomputing its totals
func ToLiabilityResponse(l *liability.Liability) LiabilityResponse {
	return LiabilityResponse{
		LiabilityID:  l.LiabilityID,
		Name:         l.Name,
		Principal:    l.Principal,
		InterestType: string(l.InterestType),
		InterestRate: l.InterestRate,
		PaymentTerms: string(l.PaymentTerms),
		StartDate:    l.StartDate,
		DueDate:      l.DueDate,
		TotalPayable: l.TotalPayable(),
		PaidAmount:   l.PaidAmount,
		Remaining:    l.Remaining(),
		Settled:      l.IsSettled(),
		AccountID:    l.AccountID,
		VendorID:     l.VendorID,
		ApprovalID:   l.ApprovalID,
		CreatedBy:    l.CreatedBy,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
