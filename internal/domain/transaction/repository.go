package transaction

import (
	"context"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
)

// Filter defines filtering options for transaction queries
type Filter struct {
	shared.Filter
	Status         *Status
	ReferenceType  *ReferenceType
	CounterpartyID string
	ApprovalID     string
	FromDate       *time.Time
	ToDate         *time.Time
}

// Repository defines the interface for transaction persistence
type Repository interface {
	FindByTransactionID(ctx context.Context, kind Kind, transactionID string) (*Transaction, error)
	FindAll(ctx context.Context, kind Kind, filter Filter) ([]Transaction, int64, error)
	Save(ctx context.Context, t *Transaction) error
}
