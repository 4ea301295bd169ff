package transaction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body shared by purchase, sale and internal
// transactions. Detail carries the block selected by ReferenceType.
type CreateTransactionRequest struct {
	Date           time.Time       `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Mode           string          `json:"mode" binding:"required,mode"`
	Submode        string          `json:"submode" binding:"required,submode"`
	DebitAccount   string          `json:"debit_account" binding:"required,max=32"`
	CreditAccount  string          `json:"credit_account" binding:"required,max=32"`
	Status         string          `json:"status" binding:"omitempty,oneof=Pending Completed Failed Cancelled"`
	Narration      string          `json:"narration" binding:"max=2000"`
	ApprovalID     string          `json:"approval_id" binding:"required,max=32"`
	AttachmentURL  string          `json:"attachment_url" binding:"omitempty,url"`
	CounterpartyID string          `json:"counterparty_id" binding:"max=32"`
	PaymentID      string          `json:"payment_id" binding:"max=32"`
	ReferenceType  string          `json:"reference_type" binding:"required"`
	Detail         json.RawMessage `json:"detail" binding:"required"`
}

func (r CreateTransactionRequest) toHeader(kind transaction.Kind) (transaction.Header, error) {
	refType := transaction.ReferenceType(r.ReferenceType)
	if !kind.AllowsReference(refType) {
		return transaction.Header{}, shared.NewValidationError(fmt.Sprintf("Reference type %q is not allowed for %s transactions", refType, kind))
	}
	detail, err := transaction.DecodeDetail(kind, refType, r.Detail)
	if err != nil {
		return transaction.Header{}, shared.NewValidationError(fmt.Sprintf("Invalid %s detail block", refType))
	}
	return transaction.Header{
		Date:           r.Date,
		Amount:         r.Amount,
		Mode:           transaction.Mode(r.Mode),
		Submode:        r.Submode,
		DebitAccount:   r.DebitAccount,
		CreditAccount:  r.CreditAccount,
		Status:         transaction.Status(r.Status),
		Narration:      r.Narration,
		ApprovalID:     strings.TrimSpace(r.ApprovalID),
		AttachmentURL:  r.AttachmentURL,
		CounterpartyID: strings.TrimSpace(r.CounterpartyID),
		PaymentID:      strings.TrimSpace(r.PaymentID),
		ReferenceType:  refType,
		Detail:         detail,
	}, nil
}

// ListFilter holds the query parameters for listing transactions of one kind
type ListFilter struct {
	Status         string     `form:"status"`
	ReferenceType  string     `form:"reference_type"`
	CounterpartyID string     `form:"counterparty_id"`
	ApprovalID     string     `form:"approval_id"`
	FromDate       *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate         *time.Time `form:"to_date" time_format:"2006-01-02"`
	Search         string     `form:"search"`
	Page           int        `form:"page" binding:"omitempty,min=1"`
	PageSize       int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f ListFilter) toDomain() (transaction.Filter, error) {
	out := transaction.Filter{
		Filter:         shared.DefaultFilter(),
		CounterpartyID: f.CounterpartyID,
		ApprovalID:     f.ApprovalID,
		FromDate:       f.FromDate,
		ToDate:         f.ToDate,
	}
	out.Search = f.Search
	if f.Page > 0 {
		out.Page = f.Page
	}
	if f.PageSize > 0 {
		out.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		out.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		out.OrderDir = f.OrderDir
	}
	if f.Status != "" {
		status := transaction.Status(f.Status)
		if !status.IsValid() {
			return out, shared.NewValidationError(fmt.Sprintf("Invalid transaction status: %s", f.Status))
		}
		out.Status = &status
	}
	if f.ReferenceType != "" {
		refType := transaction.ReferenceType(f.ReferenceType)
		out.ReferenceType = &refType
	}
	return out, nil
}

// TransactionResponse represents a recorded transaction
type TransactionResponse struct {
	TransactionID  string             `json:"transaction_id"`
	Kind           string             `json:"kind"`
	ReferenceID    string             `json:"reference_id,omitempty"`
	Date           time.Time          `json:"date"`
	Amount         decimal.Decimal    `json:"amount"`
	Mode           string             `json:"mode"`
	Submode        string             `json:"submode"`
	DebitAccount   string             `json:"debit_account"`
	CreditAccount  string             `json:"credit_account"`
	Status         string             `json:"status"`
	Narration      string             `json:"narration,omitempty"`
	ApprovalID     string             `json:"approval_id"`
	AttachmentURL  string             `json:"attachment_url,omitempty"`
	CounterpartyID string             `json:"counterparty_id,omitempty"`
	PaymentID      string             `json:"payment_id,omitempty"`
	ReferenceType  string             `json:"reference_type"`
	Detail         transaction.Detail `json:"detail"`
	ReconciledAt   *time.Time         `json:"reconciled_at,omitempty"`
	AssetIDs       []string           `json:"asset_ids,omitempty"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ToTransactionResponse converts a domain transaction to its response
func ToTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  t.TransactionID,
		Kind:           string(t.Kind),
		ReferenceID:    t.ReferenceID,
		Date:           t.Date,
		Amount:         t.Amount,
		Mode:           string(t.Mode),
		Submode:        t.Submode,
		DebitAccount:   t.DebitAccount,
		CreditAccount:  t.CreditAccount,
		Status:         string(t.Status),
		Narration:      t.Narration,
		ApprovalID:     t.ApprovalID,
		AttachmentURL:  t.AttachmentURL,
		CounterpartyID: t.CounterpartyID,
		PaymentID:      t.PaymentID,
		ReferenceType:  string(t.ReferenceType),
		Detail:         t.Detail,
		ReconciledAt:   t.ReconciledAt,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
	}
}
