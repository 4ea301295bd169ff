package liability

import (
	"context"
	"fmt"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// creationPolicy is what an approval linked to a new liability must be for
var creationPolicy = approval.Policy{Allow: []approval.Category{approval.CategoryLiability}}

// LiabilityService records liabilities. Payments against them are applied
// only by internal transaction processing.
type LiabilityService struct {
	repos   scope.Repositories
	txScope scope.TransactionScope
	metrics *telemetry.LedgerMetrics
}

// NewLiabilityService creates a new LiabilityService
func NewLiabilityService(repos scope.Repositories, txScope scope.TransactionScope) *LiabilityService {
	return &LiabilityService{repos: repos, txScope: txScope}
}

// SetMetrics sets the ledger metrics collector
func (s *LiabilityService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// Create validates the terms and linked records, then stores a LIAB- liability
func (s *LiabilityService) Create(ctx context.Context, req CreateLiabilityRequest, by string) (*LiabilityResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "liability", "Create")
	defer span.End()

	terms := req.toTerms()
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, terms); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var l *liability.Liability
	err := s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		liabilityID, err := scope.NextCode(ctx, repos, s.metrics, sequence.Liability)
		if err != nil {
			return err
		}
		l, err = liability.NewLiability(liabilityID, terms, by)
		if err != nil {
			return err
		}
		return repos.Liabilities().Save(ctx, l)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrLiabilityID, l.LiabilityID)
	logger.L(ctx).Info("liability created",
		zap.String("liability_id", l.LiabilityID),
		zap.String("total_payable", l.TotalPayable().StringFixed(2)),
	)
	scope.Publish(ctx, s.metrics, l)
	resp := ToLiabilityResponse(l)
	return &resp, nil
}

// checkLinks verifies the optional vendor, account and approval references
// concurrently
func (s *LiabilityService) checkLinks(ctx context.Context, terms liability.Terms) error {
	g, gctx := errgroup.WithContext(ctx)
	dir := s.repos.Directory()

	if terms.VendorID != "" {
		g.Go(func() error {
			ok, err := dir.VendorExists(gctx, terms.VendorID)
			if err != nil {
				return err
			}
			if !ok {
				return shared.NewNotFoundError(fmt.Sprintf("Vendor %s", terms.VendorID))
			}
			return nil
		})
	}
	if terms.AccountID != "" {
		g.Go(func() error {
			ok, err := dir.AccountExists(gctx, terms.AccountID)
			if err != nil {
				return err
			}
			if !ok {
				return shared.NewNotFoundError(fmt.Sprintf("Account %s", terms.AccountID))
			}
			return nil
		})
	}
	if terms.ApprovalID != "" {
		g.Go(func() error {
			a, err := s.repos.Approvals().FindByApprovalID(gctx, terms.ApprovalID)
			if err != nil {
				if shared.IsNotFound(err) {
					return approval.ErrInvalidApproval
				}
				return err
			}
			return a.Authorize(creationPolicy, terms.Principal)
		})
	}
	return g.Wait()
}

// Get returns a liability with totals derived from its current terms
func (s *LiabilityService) Get(ctx context.Context, liabilityID string) (*LiabilityResponse, error) {
	l, err := s.repos.Liabilities().FindByLiabilityID(ctx, liabilityID)
	if err != nil {
		return nil, err
	}
	resp := ToLiabilityResponse(l)
	return &resp, nil
}

// List returns a page of liabilities
func (s *LiabilityService) List(ctx context.Context, filter ListFilter) ([]LiabilityResponse, int64, error) {
	f := liability.Filter{Filter: shared.DefaultFilter(), VendorID: filter.VendorID}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search

	rows, total, err := s.repos.Liabilities().FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LiabilityResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToLiabilityResponse(&rows[i]))
	}
	return out, total, nil
}
