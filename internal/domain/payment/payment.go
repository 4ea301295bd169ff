package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Direction tells whether money goes to a vendor or comes from a customer
type Direction string

const (
	DirectionVendor   Direction = "Vendor Payment"
	DirectionCustomer Direction = "Customer Payment"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionVendor || d == DirectionCustomer
}

// Kind returns the identifier namespace of payments in this direction
func (d Direction) Kind() sequence.Kind {
	if d == DirectionCustomer {
		return sequence.CustomerPayment
	}
	return sequence.VendorPayment
}

// Status represents how much of a payment record has been settled
type Status string

const (
	StatusPending       Status = "Pending"
	StatusPartiallyPaid Status = "Partially Paid"
	StatusCompleted     Status = "Completed"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPartiallyPaid, StatusCompleted:
		return true
	}
	return false
}

// Payment is an expected payment to a vendor or from a customer, settled
// by purchase and sale transactions.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentID      string               `json:"payment_id"`
	Direction      Direction            `json:"direction"`
	CounterpartyID string               `json:"counterparty_id"`
	Amount         decimal.Decimal      `json:"amount"`
	Currency       valueobject.Currency `json:"currency"`
	ExchangeRate   decimal.Decimal      `json:"exchange_rate"`
	AmountLocal    decimal.Decimal      `json:"amount_in_local_currency"`
	PaidAmount     decimal.Decimal      `json:"paid_amount"`
	Status         Status               `json:"status"`
	Description    string               `json:"description"`
	DueDate        *time.Time           `json:"due_date,omitempty"`
}

// Request holds the inputs a payment record is created from
type Request struct {
	Direction      Direction
	CounterpartyID string
	Amount         decimal.Decimal
	Currency       valueobject.Currency
	ExchangeRate   decimal.Decimal
	Description    string
	DueDate        *time.Time
}

// Validate checks the request
func (r Request) Validate() error {
	if !r.Direction.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid payment direction: %s", r.Direction))
	}
	if strings.TrimSpace(r.CounterpartyID) == "" {
		return shared.NewValidationError("Counterparty is required")
	}
	if !r.Amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	if !r.Currency.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid currency: %s", r.Currency))
	}
	if !r.ExchangeRate.IsPositive() {
		return shared.NewValidationError("Exchange rate must be positive")
	}
	return nil
}

// NewPayment creates a pending payment record, converting the amount to
// local currency at the given rate
func NewPayment(paymentID string, req Request, createdBy string) (*Payment, error) {
	if paymentID == "" {
		return nil, shared.NewValidationError("Payment ID cannot be empty")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := valueobject.NewMoney(req.Amount, req.Currency)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	local, err := src.Convert(req.ExchangeRate, valueobject.DefaultCurrency)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy),
		PaymentID:         paymentID,
		Direction:         req.Direction,
		CounterpartyID:    strings.TrimSpace(req.CounterpartyID),
		Amount:            valueobject.Round(req.Amount),
		Currency:          req.Currency,
		ExchangeRate:      req.ExchangeRate,
		AmountLocal:       local.Amount(),
		PaidAmount:        decimal.Zero,
		Status:            StatusPending,
		Description:       req.Description,
		DueDate:           req.DueDate,
	}, nil
}

// BelongsTo reports whether the payment is owed to or by counterpartyID
func (p *Payment) BelongsTo(counterpartyID string) bool {
	return p.CounterpartyID == counterpartyID
}

// Outstanding returns the local-currency amount still unpaid
func (p *Payment) Outstanding() decimal.Decimal {
	rem := p.AmountLocal.Sub(p.PaidAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ApplyTransaction adds a settled transaction amount. The record is
// Completed as soon as the paid total reaches the local amount and stays
// Completed on further increments.
func (p *Payment) ApplyTransaction(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Transaction amount must be positive")
	}
	p.PaidAmount = p.PaidAmount.Add(valueobject.Round(amount))
	p.Status = p.deriveStatus()
	p.Touch(time.Now())
	p.IncrementVersion()
	return nil
}

func (p *Payment) deriveStatus() Status {
	switch {
	case p.PaidAmount.GreaterThanOrEqual(p.AmountLocal):
		return StatusCompleted
	case p.PaidAmount.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}
