package liability

import (
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeLiability is the aggregate type name used in events
const AggregateTypeLiability = "Liability"

// CreatedEvent is raised when a liability is recorded
type CreatedEvent struct {
	shared.BaseDomainEvent
	Principal    decimal.Decimal `json:"principal"`
	TotalPayable decimal.Decimal `json:"total_payable"`
}

// NewCreatedEvent creates a new CreatedEvent
func NewCreatedEvent(l *Liability) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LiabilityCreated", AggregateTypeLiability, l.LiabilityID),
		Principal:       l.Principal,
		TotalPayable:    l.TotalPayable(),
	}
}

// PaymentAppliedEvent is raised when an internal transaction pays down a liability
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// NewPaymentAppliedEvent creates a new PaymentAppliedEvent
func NewPaymentAppliedEvent(l *Liability, amount decimal.Decimal, transactionID string) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LiabilityPaymentApplied", AggregateTypeLiability, l.LiabilityID),
		TransactionID:   transactionID,
		Amount:          amount,
		PaidAmount:      l.PaidAmount,
		Remaining:       l.Remaining(),
	}
}
