package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizops/ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// TransactionModel stores purchase, sale and internal transactions in one
// table, discriminated by kind. The detail block is kept as JSON next to
// its reference type.
type TransactionModel struct {
	AggregateModel
	TransactionID  string                    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Kind           transaction.Kind          `gorm:"type:varchar(20);not null;index"`
	ReferenceID    string                    `gorm:"type:varchar(32);index"`
	Date           time.Time                 `gorm:"not null;index"`
	Amount         decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	Mode           transaction.Mode          `gorm:"type:varchar(30);not null"`
	Submode        string                    `gorm:"type:varchar(30);not null"`
	DebitAccount   string                    `gorm:"type:varchar(32);not null"`
	CreditAccount  string                    `gorm:"type:varchar(32);not null"`
	Status         transaction.Status        `gorm:"type:varchar(20);not null;index"`
	Narration      string                    `gorm:"type:text"`
	ApprovalID     string                    `gorm:"type:varchar(32);not null;index"`
	AttachmentURL  string                    `gorm:"type:varchar(500)"`
	CounterpartyID string                    `gorm:"type:varchar(32);index"`
	PaymentID      string                    `gorm:"type:varchar(32);index"`
	ReferenceType  transaction.ReferenceType `gorm:"type:varchar(20);not null"`
	Detail         string                    `gorm:"type:jsonb;not null"`
	ReconciledAt   *time.Time
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() (*transaction.Transaction, error) {
	detail, err := transaction.DecodeDetail(m.Kind, m.ReferenceType, []byte(m.Detail))
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", m.TransactionID, err)
	}
	return &transaction.Transaction{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TransactionID:     m.TransactionID,
		Kind:              m.Kind,
		ReferenceID:       m.ReferenceID,
		Date:              m.Date,
		Amount:            m.Amount,
		Mode:              m.Mode,
		Submode:           m.Submode,
		DebitAccount:      m.DebitAccount,
		CreditAccount:     m.CreditAccount,
		Status:            m.Status,
		Narration:         m.Narration,
		ApprovalID:        m.ApprovalID,
		AttachmentURL:     m.AttachmentURL,
		CounterpartyID:    m.CounterpartyID,
		PaymentID:         m.PaymentID,
		ReferenceType:     m.ReferenceType,
		Detail:            detail,
		ReconciledAt:      m.ReconciledAt,
	}, nil
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction
func TransactionModelFromDomain(t *transaction.Transaction) (*TransactionModel, error) {
	detail, err := json.Marshal(t.Detail)
	if err != nil {
		return nil, fmt.Errorf("encode detail: %w", err)
	}
	m := &TransactionModel{
		TransactionID:  t.TransactionID,
		Kind:           t.Kind,
		ReferenceID:    t.ReferenceID,
		Date:           t.Date,
		Amount:         t.Amount,
		Mode:           t.Mode,
		Submode:        t.Submode,
		DebitAccount:   t.DebitAccount,
		CreditAccount:  t.CreditAccount,
		Status:         t.Status,
		Narration:      t.Narration,
		ApprovalID:     t.ApprovalID,
		AttachmentURL:  t.AttachmentURL,
		CounterpartyID: t.CounterpartyID,
		PaymentID:      t.PaymentID,
		ReferenceType:  t.ReferenceType,
		Detail:         string(detail),
		ReconciledAt:   t.ReconciledAt,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m, nil
}
