package liability

import (
	"context"

	"github.com/bizops/ledger/internal/domain/shared"
)

// Filter defines filtering options for liability queries
type Filter struct {
	shared.Filter
	VendorID string
}

// Repository defines the interface for liability persistence
type Repository interface {
	FindByLiabilityID(ctx context.Context, liabilityID string) (*Liability, error)

	// FindByLiabilityIDForUpdate locks the row until the surrounding transaction ends
	FindByLiabilityIDForUpdate(ctx context.Context, liabilityID string) (*Liability, error)

	FindAll(ctx context.Context, filter Filter) ([]Liability, int64, error)

	Save(ctx context.Context, l *Liability) error
}
