package asset

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Disposal is the singleton disposal sub-record of an asset. Sale fields
// stay empty until a completed asset sale is reconciled.
type Disposal struct {
	DisposalID        string           `json:"disposal_id"`
	Reason            string           `json:"reason"`
	RequestDate       time.Time        `json:"request_date"`
	RequestedBy       string           `json:"requested_by"`
	SaleTransactionID string           `json:"sale_transaction_id,omitempty"`
	SaleAmount        *decimal.Decimal `json:"sale_amount,omitempty"`
	SaleDate          *time.Time       `json:"sale_date,omitempty"`
}

// IsSold returns true once the sale has been back-filled
func (d *Disposal) IsSold() bool {
	return d.SaleTransactionID != ""
}

// CheckDisposalRequest reports whether a disposal may be requested at now
func (a *Asset) CheckDisposalRequest(reason string) error {
	if a.Status != StatusActive {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Disposal can only be requested for Active assets, asset %s is %s", a.AssetID, a.Status))
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewValidationError("Disposal reason is required")
	}
	return nil
}

// RequestDisposal moves an Active asset to Awaiting Disposal
func (a *Asset) RequestDisposal(disposalID, reason, by string, now time.Time) error {
	a.Evaluate(now)
	if err := a.CheckDisposalRequest(reason); err != nil {
		return err
	}
	if disposalID == "" {
		return shared.NewValidationError("Disposal ID cannot be empty")
	}
	a.Disposal = &Disposal{
		DisposalID:  disposalID,
		Reason:      strings.TrimSpace(reason),
		RequestDate: now,
		RequestedBy: by,
	}
	a.setStatus(StatusAwaitingDisposal, now)
	a.AddDomainEvent(NewDisposalRequestedEvent(a))
	return nil
}

// CheckSale reports whether the asset can be sold
func (a *Asset) CheckSale() error {
	if a.Status != StatusAwaitingDisposal {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Asset %s must be Awaiting Disposal to be sold, current status is %s", a.AssetID, a.Status))
	}
	return nil
}

// CompleteDisposal marks the asset Disposed and back-fills the sale fields
// that are still empty. A repeat call for a disposed asset changes nothing.
func (a *Asset) CompleteDisposal(saleTransactionID string, amount decimal.Decimal, saleDate time.Time) error {
	if a.Status == StatusDisposed {
		return nil
	}
	if err := a.CheckSale(); err != nil {
		return err
	}
	if a.Disposal == nil {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Asset %s has no disposal request", a.AssetID))
	}
	if a.Disposal.SaleTransactionID == "" {
		a.Disposal.SaleTransactionID = saleTransactionID
	}
	if a.Disposal.SaleAmount == nil {
		rounded := valueobject.Round(amount)
		a.Disposal.SaleAmount = &rounded
	}
	if a.Disposal.SaleDate == nil {
		a.Disposal.SaleDate = &saleDate
	}
	a.setStatus(StatusDisposed, time.Now())
	a.AddDomainEvent(NewDisposedEvent(a))
	return nil
}
