package persistence

import (
	"context"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/masterdata"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/transaction"
	"gorm.io/gorm"
)

// GormTransactionScope implements scope.TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos scope.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories hands out repositories bound to one transaction
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Sequences() sequence.Allocator {
	return NewGormSequenceAllocator(r.tx)
}

func (r *gormRepositories) Assets() asset.Repository {
	return NewGormAssetRepository(r.tx)
}

func (r *gormRepositories) Liabilities() liability.Repository {
	return NewGormLiabilityRepository(r.tx)
}

func (r *gormRepositories) Payments() payment.Repository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormRepositories) Approvals() approval.Repository {
	return NewGormApprovalRepository(r.tx)
}

func (r *gormRepositories) Transactions() transaction.Repository {
	return NewGormTransactionRepository(r.tx)
}

func (r *gormRepositories) Directory() masterdata.Directory {
	return NewGormDirectory(r.tx)
}

var (
	_ scope.TransactionScope = (*GormTransactionScope)(nil)
	_ scope.Repositories     = (*gormRepositories)(nil)
)

// NewRepositories returns repositories bound to db for reads outside a
// transaction
func NewRepositories(db *gorm.DB) scope.Repositories {
	return &gormRepositories{tx: db}
}
