package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/transaction"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TransactionService records purchase, sale and internal transactions and
// reconciles their side effects in the same database transaction.
type TransactionService struct {
	repos       scope.Repositories
	txScope     scope.TransactionScope
	metrics     *telemetry.LedgerMetrics
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	now         func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(repos scope.Repositories, txScope scope.TransactionScope) *TransactionService {
	return &TransactionService{
		repos:   repos,
		txScope: txScope,
		now:     time.Now,
	}
}

// SetMetrics sets the ledger metrics collector
func (s *TransactionService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// SetIdempotencyStore enables duplicate detection on client request keys
func (s *TransactionService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idemConfig = cfg
}

// CreatePurchase records a purchase from a vendor
func (s *TransactionService) CreatePurchase(ctx context.Context, req CreateTransactionRequest, idempotencyKey, by string) (*TransactionResponse, error) {
	return s.process(ctx, transaction.KindPurchase, req, idempotencyKey, by)
}

// CreateSale records a sale to a customer
func (s *TransactionService) CreateSale(ctx context.Context, req CreateTransactionRequest, idempotencyKey, by string) (*TransactionResponse, error) {
	return s.process(ctx, transaction.KindSale, req, idempotencyKey, by)
}

// CreateInternal records an internal money movement
func (s *TransactionService) CreateInternal(ctx context.Context, req CreateTransactionRequest, idempotencyKey, by string) (*TransactionResponse, error) {
	return s.process(ctx, transaction.KindInternal, req, idempotencyKey, by)
}

// process validates the request against every linked record, then mints
// identifiers, persists and reconciles in one unit of work. Nothing is
// written unless all of it succeeds.
func (s *TransactionService) process(ctx context.Context, kind transaction.Kind, req CreateTransactionRequest, idempotencyKey, by string) (resp *TransactionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transaction", "Create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrKind, string(kind),
		telemetry.SpanAttrReferenceType, req.ReferenceType,
		telemetry.SpanAttrApprovalID, req.ApprovalID,
	)
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
			s.metrics.RecordTransaction(ctx, string(kind), req.ReferenceType, errorCode(err), req.Amount)
		}
	}()

	h, err := req.toHeader(kind)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(kind); err != nil {
		return nil, err
	}

	release, err := s.claim(ctx, kind, idempotencyKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			release()
		}
	}()

	if err := s.check(ctx, kind, &h); err != nil {
		return nil, err
	}

	var (
		t      *transaction.Transaction
		result reconciliation
	)
	err = s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		transactionID, err := scope.NextCode(ctx, repos, s.metrics, kind.Sequence())
		if err != nil {
			return err
		}
		var referenceID string
		if kind.HasReference() {
			if referenceID, err = scope.NextCode(ctx, repos, s.metrics, sequence.Reference); err != nil {
				return err
			}
		}
		t, err = transaction.NewTransaction(kind, transactionID, referenceID, h, by)
		if err != nil {
			return err
		}
		result, err = s.reconcile(ctx, repos, t)
		if err != nil {
			s.metrics.RecordReconciliation(ctx, string(kind), string(h.ReferenceType), false)
			return err
		}
		t.MarkReconciled(s.now())
		return repos.Transactions().Save(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReconciliation(ctx, string(kind), string(t.ReferenceType), true)
	s.metrics.RecordTransaction(ctx, string(kind), string(t.ReferenceType), "", t.Amount)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTransactionID, t.TransactionID,
		telemetry.SpanAttrReferenceID, t.ReferenceID,
		telemetry.SpanAttrAmount, t.Amount.StringFixed(2),
	)
	logger.L(ctx).Info("transaction recorded",
		zap.String("transaction_id", t.TransactionID),
		zap.String("kind", string(kind)),
		zap.String("reference_type", string(t.ReferenceType)),
		zap.String("amount", t.Amount.StringFixed(2)),
		zap.Strings("asset_ids", result.assetIDs),
	)
	scope.Publish(ctx, s.metrics, append([]shared.AggregateRoot{t}, result.touched...)...)

	out := ToTransactionResponse(t)
	out.AssetIDs = result.assetIDs
	return &out, nil
}

// claim marks the client's request key as in use. The returned func frees
// it again and is called when the request fails.
func (s *TransactionService) claim(ctx context.Context, kind transaction.Kind, key string) (func(), error) {
	if s.idempotency == nil || !s.idemConfig.Enabled || key == "" {
		return func() {}, nil
	}
	scoped := fmt.Sprintf("txn:%s:%s", kind, key)
	claimed, err := s.idempotency.MarkProcessed(ctx, scoped, s.idemConfig.TTL)
	if err != nil {
		return nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !claimed {
		return nil, shared.NewDomainError(shared.CodeDuplicateRequest, "A request with this idempotency key was already submitted")
	}
	return func() {
		if err := s.idempotency.Release(context.WithoutCancel(ctx), scoped); err != nil {
			logger.L(ctx).Warn("failed to release idempotency key", zap.String("key", scoped), zap.Error(err))
		}
	}, nil
}

// Get returns one transaction of kind by its code
func (s *TransactionService) Get(ctx context.Context, kind transaction.Kind, transactionID string) (*TransactionResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid transaction kind: %s", kind))
	}
	t, err := s.repos.Transactions().FindByTransactionID(ctx, kind, transactionID)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(t)
	return &resp, nil
}

// List returns a page of transactions of kind
func (s *TransactionService) List(ctx context.Context, kind transaction.Kind, filter ListFilter) ([]TransactionResponse, int64, error) {
	if !kind.IsValid() {
		return nil, 0, shared.NewValidationError(fmt.Sprintf("Invalid transaction kind: %s", kind))
	}
	f, err := filter.toDomain()
	if err != nil {
		return nil, 0, err
	}
	rows, total, err := s.repos.Transactions().FindAll(ctx, kind, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToTransactionResponse(&rows[i]))
	}
	return out, total, nil
}

func errorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "ERR_INTERNAL"
}
