package persistence

import (
	"context"
	"fmt"

	"github.com/bizops/ledger/internal/domain/sequence"
	"gorm.io/gorm"
)

// nextValueSQL increments a named counter in one statement, creating it at 1
// on first use. Concurrent callers serialize on the row lock, so no two ever
// see the same value.
const nextValueSQL = `INSERT INTO counters (name, seq) VALUES (?, 1)
ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
RETURNING seq`

// GormSequenceAllocator implements sequence.Allocator on the counters table
type GormSequenceAllocator struct {
	db *gorm.DB
}

// NewGormSequenceAllocator creates a new GormSequenceAllocator
func NewGormSequenceAllocator(db *gorm.DB) *GormSequenceAllocator {
	return &GormSequenceAllocator{db: db}
}

// NextValue returns the next value of counter. Inside a transaction the
// increment is rolled back with everything else.
func (a *GormSequenceAllocator) NextValue(ctx context.Context, counter string) (int64, error) {
	if counter == "" {
		return 0, fmt.Errorf("counter name cannot be empty")
	}
	var seq int64
	if err := a.db.WithContext(ctx).Raw(nextValueSQL, counter).Scan(&seq).Error; err != nil {
		return 0, err
	}
	if seq <= 0 {
		return 0, fmt.Errorf("counter %s returned no value", counter)
	}
	return seq, nil
}

var _ sequence.Allocator = (*GormSequenceAllocator)(nil)
