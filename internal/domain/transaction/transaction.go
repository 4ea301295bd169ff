// Package transaction models purchase, sale and internal transactions and
// the validation they must pass before anything is written.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Header holds the fields common to every transaction kind
type Header struct {
	Date           time.Time
	Amount         decimal.Decimal
	Mode           Mode
	Submode        string
	DebitAccount   string
	CreditAccount  string
	Status         Status
	Narration      string
	ApprovalID     string
	AttachmentURL  string
	CounterpartyID string // vendor for purchases, customer for sales
	PaymentID      string // vendor or customer payment record
	ReferenceType  ReferenceType
	Detail         Detail
}

// ErrInvalidAccounts is returned when both sides of a transaction are N/A
var ErrInvalidAccounts = shared.NewDomainError(shared.CodeInvalidAccounts, "Debit and credit accounts cannot both be N/A")

// Validate checks the header for kind. It does not consult other aggregates.
func (h *Header) Validate(kind Kind) error {
	if !kind.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid transaction kind: %s", kind))
	}
	if h.Date.IsZero() {
		return shared.NewValidationError("Transaction date is required")
	}
	if !h.Amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	if !h.Mode.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid payment mode: %s", h.Mode))
	}
	if !h.Mode.HasSubmode(h.Submode) {
		return shared.NewValidationError(fmt.Sprintf("Submode %q does not belong to mode %s", h.Submode, h.Mode))
	}
	if h.Status == "" {
		h.Status = StatusPending
	}
	if !h.Status.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid transaction status: %s", h.Status))
	}
	if strings.TrimSpace(h.ApprovalID) == "" {
		return shared.NewValidationError("Approval is required")
	}
	if kind.HasReference() {
		if strings.TrimSpace(h.CounterpartyID) == "" {
			return shared.NewValidationError(fmt.Sprintf("%s transactions require a counterparty", kind))
		}
		if strings.TrimSpace(h.PaymentID) == "" {
			return shared.NewValidationError(fmt.Sprintf("%s transactions require a payment record", kind))
		}
	}
	if err := ValidateAccounts(h.DebitAccount, h.CreditAccount); err != nil {
		return err
	}
	return ValidateDetail(kind, h.ReferenceType, h.Detail)
}

// ValidateAccounts requires both account references and allows at most one
// of them to be N/A
func ValidateAccounts(debit, credit string) error {
	if strings.TrimSpace(debit) == "" || strings.TrimSpace(credit) == "" {
		return shared.NewValidationError("Debit and credit accounts are required")
	}
	if IsNA(debit) && IsNA(credit) {
		return ErrInvalidAccounts
	}
	return nil
}

// Transaction is the aggregate root for a recorded money movement
type Transaction struct {
	shared.BaseAggregateRoot
	TransactionID  string          `json:"transaction_id"`
	Kind           Kind            `json:"kind"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Mode           Mode            `json:"mode"`
	Submode        string          `json:"submode"`
	DebitAccount   string          `json:"debit_account"`
	CreditAccount  string          `json:"credit_account"`
	Status         Status          `json:"status"`
	Narration      string          `json:"narration"`
	ApprovalID     string          `json:"approval_id"`
	AttachmentURL  string          `json:"attachment_url,omitempty"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	PaymentID      string          `json:"payment_id,omitempty"`
	ReferenceType  ReferenceType   `json:"reference_type"`
	Detail         Detail          `json:"detail"`
	ReconciledAt   *time.Time      `json:"reconciled_at,omitempty"`
}

// NewTransaction builds a transaction from a validated header and freshly
// minted identifiers
func NewTransaction(kind Kind, transactionID, referenceID string, h Header, createdBy string) (*Transaction, error) {
	if err := h.Validate(kind); err != nil {
		return nil, err
	}
	if !kind.Sequence().HasPrefix(transactionID) {
		return nil, shared.NewValidationError(fmt.Sprintf("Transaction ID %q is not a %s id", transactionID, kind))
	}
	if kind.HasReference() && referenceID == "" {
		return nil, shared.NewValidationError("Reference ID is required")
	}
	return &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(createdBy),
		TransactionID:     transactionID,
		Kind:              kind,
		ReferenceID:       referenceID,
		Date:              h.Date,
		Amount:            valueobject.Round(h.Amount),
		Mode:              h.Mode,
		Submode:           h.Submode,
		DebitAccount:      strings.TrimSpace(h.DebitAccount),
		CreditAccount:     strings.TrimSpace(h.CreditAccount),
		Status:            h.Status,
		Narration:         h.Narration,
		ApprovalID:        h.ApprovalID,
		AttachmentURL:     h.AttachmentURL,
		CounterpartyID:    h.CounterpartyID,
		PaymentID:         h.PaymentID,
		ReferenceType:     h.ReferenceType,
		Detail:            h.Detail,
	}, nil
}

// IsReconciled returns true once side effects have been applied
func (t *Transaction) IsReconciled() bool {
	return t.ReconciledAt != nil
}

// MarkReconciled stamps the reconciliation time
func (t *Transaction) MarkReconciled(now time.Time) {
	t.ReconciledAt = &now
	t.Touch(now)
}
