package payment

import (
	"time"

	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest represents a request to open a payment record.
// Currency defaults to the local currency and ExchangeRate to 1.
type CreatePaymentRequest struct {
	CounterpartyID string           `json:"counterparty_id" binding:"required,max=32"`
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	Currency       string           `json:"currency" binding:"omitempty,len=3"`
	ExchangeRate   *decimal.Decimal `json:"exchange_rate"`
	Description    string           `json:"description" binding:"max=1000"`
	DueDate        *time.Time       `json:"due_date"`
}

// PaymentResponse represents a payment record in API responses
type PaymentResponse struct {
	PaymentID      string          `json:"payment_id"`
	Direction      string          `json:"direction"`
	CounterpartyID string          `json:"counterparty_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	AmountLocal    decimal.Decimal `json:"amount_in_local_currency"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	Status         string          `json:"status"`
	Description    string          `json:"description"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		Direction:      string(p.Direction),
		CounterpartyID: p.CounterpartyID,
		Amount:         p.Amount,
		Currency:       string(p.Currency),
		ExchangeRate:   p.ExchangeRate,
		AmountLocal:    p.AmountLocal,
		PaidAmount:     p.PaidAmount,
		Outstanding:    p.Outstanding(),
		Status:         string(p.Status),
		Description:    p.Description,
		DueDate:        p.DueDate,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
