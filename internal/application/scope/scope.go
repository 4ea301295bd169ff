// Package scope defines the unit of work shared by the ledger services.
// Everything a request writes goes through one TransactionScope so that
// identifiers, records and their side effects commit or roll back together.
package scope

import (
	"context"

	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/masterdata"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/transaction"
)

// Repositories provides access to all repositories within a transaction
type Repositories interface {
	Sequences() sequence.Allocator
	Assets() asset.Repository
	Liabilities() liability.Repository
	Payments() payment.Repository
	Approvals() approval.Repository
	Transactions() transaction.Repository
	Directory() masterdata.Directory
}

// TransactionScope runs fn inside a database transaction. Returning an
// error from fn rolls back every write made through repos.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
