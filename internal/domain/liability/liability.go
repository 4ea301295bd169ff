package liability

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Liability is the aggregate root for money the company owes. The amount
// payable is always derived from its inputs; PaidAmount only grows, and only
// through ApplyPayment.
type Liability struct {
	shared.BaseAggregateRoot
	LiabilityID  string               `json:"liability_id"`
	Name         string               `json:"name"`
	Principal    decimal.Decimal      `json:"principal"`
	InterestType InterestType         `json:"interest_type"`
	InterestRate decimal.Decimal      `json:"interest_rate"`
	PaymentTerms PaymentTerms         `json:"payment_terms"`
	StartDate    time.Time            `json:"start_date"`
	DueDate      time.Time            `json:"due_date"`
	PaidAmount   decimal.Decimal      `json:"paid_amount"`
	AccountID    string               `json:"account_id"`
	VendorID     string               `json:"vendor_id"`
	ApprovalID   string               `json:"approval_id"`
	Currency     valueobject.Currency `json:"-"`
}

// Terms holds the inputs a liability is created from
type Terms struct {
	Name         string
	Principal    decimal.Decimal
	InterestType InterestType
	InterestRate decimal.Decimal
	PaymentTerms PaymentTerms
	StartDate    time.Time
	DueDate      time.Time
	AccountID    string
	VendorID     string
	ApprovalID   string
}

// Validate checks the terms
func (t Terms) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return shared.NewValidationError("Liability name is required")
	}
	if !t.Principal.IsPositive() {
		return shared.NewValidationError("Principal must be positive")
	}
	if !t.InterestType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid interest type: %s", t.InterestType))
	}
	if t.InterestRate.IsNegative() {
		return shared.NewValidationError("Interest rate cannot be negative")
	}
	if !t.PaymentTerms.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid payment terms: %s", t.PaymentTerms))
	}
	if t.StartDate.IsZero() || t.DueDate.IsZero() {
		return shared.NewValidationError("Start and due dates are required")
	}
	if t.DueDate.Before(t.StartDate) {
		return shared.NewValidationError("Due date cannot be before start date")
	}
	return nil
}

// NewLiability creates a new liability with nothing paid
func NewLiability(liabilityID string, terms Terms, createdBy string) (*Liability, error) {
	if liabilityID == "" {
		return nil, shared.NewValidationError("Liability ID cannot be empty")
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	l := &Liability{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy),
		LiabilityID:       liabilityID,
		Name:              strings.TrimSpace(terms.Name),
		Principal:         valueobject.Round(terms.Principal),
		InterestType:      terms.InterestType,
		InterestRate:      terms.InterestRate,
		PaymentTerms:      terms.PaymentTerms,
		StartDate:         terms.StartDate,
		DueDate:           terms.DueDate,
		PaidAmount:        decimal.Zero,
		AccountID:         terms.AccountID,
		VendorID:          terms.VendorID,
		ApprovalID:        terms.ApprovalID,
		Currency:          valueobject.DefaultCurrency,
	}
	l.AddDomainEvent(NewCreatedEvent(l))
	return l, nil
}

// TotalPayable recomputes principal plus interest from the current inputs
func (l *Liability) TotalPayable() decimal.Decimal {
	return TotalPayable(l.Principal, l.InterestRate, l.InterestType, l.PaymentTerms, l.StartDate, l.DueDate)
}

// Remaining returns what is still owed
func (l *Liability) Remaining() decimal.Decimal {
	rem := l.TotalPayable().Sub(l.PaidAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// IsSettled returns true once nothing remains to be paid
func (l *Liability) IsSettled() bool {
	return l.Remaining().IsZero()
}

// CheckPayment reports whether amount can be applied without overpaying
func (l *Liability) CheckPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	if l.PaidAmount.Add(amount).GreaterThan(l.TotalPayable()) {
		return shared.NewDomainError(shared.CodeOverpayment,
			fmt.Sprintf("Payment exceeds remaining amount. Remaining: %s", valueobject.FormatAmount(l.Remaining(), l.currency())))
	}
	return nil
}

// ApplyPayment adds amount to the paid total. On failure PaidAmount is unchanged.
func (l *Liability) ApplyPayment(amount decimal.Decimal, transactionID string) error {
	if err := l.CheckPayment(amount); err != nil {
		return err
	}
	l.PaidAmount = l.PaidAmount.Add(valueobject.Round(amount))
	l.Touch(time.Now())
	l.IncrementVersion()
	l.AddDomainEvent(NewPaymentAppliedEvent(l, amount, transactionID))
	return nil
}

func (l *Liability) currency() valueobject.Currency {
	if l.Currency == "" {
		return valueobject.DefaultCurrency
	}
	return l.Currency
}
