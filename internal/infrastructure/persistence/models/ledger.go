package models

import (
	"time"

	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LiabilityModel is the persistence model for the Liability aggregate root.
// TotalPayable is a snapshot written on every save for reporting; reads
// always recompute it from the other columns.
type LiabilityModel struct {
	AggregateModel
	LiabilityID  string                 `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name         string                 `gorm:"type:varchar(200);not null"`
	Principal    decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	InterestType liability.InterestType `gorm:"type:varchar(20);not null"`
	InterestRate decimal.Decimal        `gorm:"type:decimal(12,6);not null;default:0"`
	PaymentTerms liability.PaymentTerms `gorm:"type:varchar(20);not null"`
	StartDate    time.Time              `gorm:"not null"`
	DueDate      time.Time              `gorm:"not null"`
	PaidAmount   decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	TotalPayable decimal.Decimal        `gorm:"column:calculated_payment_amount;type:decimal(18,2)"`
	AccountID    string                 `gorm:"type:varchar(32)"`
	VendorID     string                 `gorm:"type:varchar(32);index"`
	ApprovalID   string                 `gorm:"type:varchar(32)"`
}

// TableName returns the table name for GORM
func (LiabilityModel) TableName() string {
	return "liabilities"
}

// ToDomain converts the persistence model to a domain Liability
func (m *LiabilityModel) ToDomain() *liability.Liability {
	return &liability.Liability{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		LiabilityID:       m.LiabilityID,
		Name:              m.Name,
		Principal:         m.Principal,
		InterestType:      m.InterestType,
		InterestRate:      m.InterestRate,
		PaymentTerms:      m.PaymentTerms,
		StartDate:         m.StartDate,
		DueDate:           m.DueDate,
		PaidAmount:        m.PaidAmount,
		AccountID:         m.AccountID,
		VendorID:          m.VendorID,
		ApprovalID:        m.ApprovalID,
		Currency:          valueobject.DefaultCurrency,
	}
}

// LiabilityModelFromDomain creates a new persistence model from a domain Liability
func LiabilityModelFromDomain(l *liability.Liability) *LiabilityModel {
	m := &LiabilityModel{
		LiabilityID:  l.LiabilityID,
		Name:         l.Name,
		Principal:    l.Principal,
		InterestType: l.InterestType,
		InterestRate: l.InterestRate,
		PaymentTerms: l.PaymentTerms,
		StartDate:    l.StartDate,
		DueDate:      l.DueDate,
		PaidAmount:   l.PaidAmount,
		TotalPayable: l.TotalPayable(),
		AccountID:    l.AccountID,
		VendorID:     l.VendorID,
		ApprovalID:   l.ApprovalID,
	}
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	return m
}

// PaymentModel is the persistence model for vendor and customer payment records
type PaymentModel struct {
	AggregateModel
	PaymentID      string               `gorm:"type:varchar(32);not null;uniqueIndex"`
	Direction      payment.Direction    `gorm:"type:varchar(30);not null;index"`
	CounterpartyID string               `gorm:"type:varchar(32);not null;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	ExchangeRate   decimal.Decimal      `gorm:"type:decimal(12,6);not null"`
	AmountLocal    decimal.Decimal      `gorm:"column:amount_in_local_currency;type:decimal(18,2);not null"`
	PaidAmount     decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Status         payment.Status       `gorm:"type:varchar(20);not null;index"`
	Description    string               `gorm:"type:text"`
	DueDate        *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PaymentID:         m.PaymentID,
		Direction:         m.Direction,
		CounterpartyID:    m.CounterpartyID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		ExchangeRate:      m.ExchangeRate,
		AmountLocal:       m.AmountLocal,
		PaidAmount:        m.PaidAmount,
		Status:            m.Status,
		Description:       m.Description,
		DueDate:           m.DueDate,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{
		PaymentID:      p.PaymentID,
		Direction:      p.Direction,
		CounterpartyID: p.CounterpartyID,
		Amount:         p.Amount,
		Currency:       p.Currency,
		ExchangeRate:   p.ExchangeRate,
		AmountLocal:    p.AmountLocal,
		PaidAmount:     p.PaidAmount,
		Status:         p.Status,
		Description:    p.Description,
		DueDate:        p.DueDate,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ApprovalModel is the persistence model for approvals
type ApprovalModel struct {
	AggregateModel
	ApprovalID  string            `gorm:"type:varchar(32);not null;uniqueIndex"`
	Category    approval.Category `gorm:"column:approval_for;type:varchar(30);not null;index"`
	Status      approval.Status   `gorm:"type:varchar(20);not null;index"`
	Description string            `gorm:"type:text"`
	MinAmount   *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	MaxAmount   *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	DecidedBy   string            `gorm:"type:varchar(100)"`
	DecidedAt   *time.Time
	Remarks     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ApprovalModel) TableName() string {
	return "approvals"
}

// ToDomain converts the persistence model to a domain Approval
func (m *ApprovalModel) ToDomain() *approval.Approval {
	return &approval.Approval{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ApprovalID:        m.ApprovalID,
		Category:          m.Category,
		Status:            m.Status,
		Description:       m.Description,
		MinAmount:         m.MinAmount,
		MaxAmount:         m.MaxAmount,
		DecidedBy:         m.DecidedBy,
		DecidedAt:         m.DecidedAt,
		Remarks:           m.Remarks,
	}
}

// ApprovalModelFromDomain creates a new persistence model from a domain Approval
func ApprovalModelFromDomain(a *approval.Approval) *ApprovalModel {
	m := &ApprovalModel{
		ApprovalID:  a.ApprovalID,
		Category:    a.Category,
		Status:      a.Status,
		Description: a.Description,
		MinAmount:   a.MinAmount,
		MaxAmount:   a.MaxAmount,
		DecidedBy:   a.DecidedBy,
		DecidedAt:   a.DecidedAt,
		Remarks:     a.Remarks,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}
