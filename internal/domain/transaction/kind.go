package transaction

import (
	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/sequence"
)

// Kind is one of the three transaction families
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindSale     Kind = "sale"
	KindInternal Kind = "internal"
)

// IsValid checks if the kind is valid
func (k Kind) IsValid() bool {
	return k == KindPurchase || k == KindSale || k == KindInternal
}

// Sequence returns the namespace transaction ids of this kind are minted from
func (k Kind) Sequence() sequence.Kind {
	switch k {
	case KindPurchase:
		return sequence.PurchaseTransaction
	case KindSale:
		return sequence.SaleTransaction
	default:
		return sequence.InternalTransaction
	}
}

// HasReference returns true for kinds that also carry a REF- reference id
func (k Kind) HasReference() bool {
	return k == KindPurchase || k == KindSale
}

// ApprovalPolicy returns the approval categories that can authorize this kind
func (k Kind) ApprovalPolicy() approval.Policy {
	switch k {
	case KindPurchase:
		return approval.Policy{Allow: []approval.Category{approval.CategoryVendorPayment}}
	case KindSale:
		return approval.Policy{Allow: []approval.Category{approval.CategoryCustomerPayment}}
	default:
		return approval.Policy{Deny: []approval.Category{
			approval.CategoryAsset,
			approval.CategoryCustomerPayment,
			approval.CategoryVendorPayment,
		}}
	}
}

// Status represents the state of a transaction
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
	StatusCancelled Status = "Cancelled"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
