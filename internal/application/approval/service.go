package approval

import (
	"context"
	"time"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ApprovalService issues and decides approvals
type ApprovalService struct {
	repos   scope.Repositories
	txScope scope.TransactionScope
	metrics *telemetry.LedgerMetrics
	now     func() time.Time
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(repos scope.Repositories, txScope scope.TransactionScope) *ApprovalService {
	return &ApprovalService{repos: repos, txScope: txScope, now: time.Now}
}

// SetMetrics sets the ledger metrics collector
func (s *ApprovalService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// Create stores a pending APR- approval
func (s *ApprovalService) Create(ctx context.Context, req CreateApprovalRequest, by string) (*ApprovalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "approval", "Create")
	defer span.End()

	var a *approval.Approval
	err := s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		approvalID, err := scope.NextCode(ctx, repos, s.metrics, sequence.Approval)
		if err != nil {
			return err
		}
		a, err = approval.NewApproval(approvalID, approval.Category(req.Category), req.Description, req.MinAmount, req.MaxAmount, by)
		if err != nil {
			return err
		}
		return repos.Approvals().Save(ctx, a)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("approval requested",
		zap.String("approval_id", a.ApprovalID),
		zap.String("category", string(a.Category)),
	)
	resp := ToApprovalResponse(a)
	return &resp, nil
}

// Approve grants a pending approval
func (s *ApprovalService) Approve(ctx context.Context, approvalID string, req DecisionRequest, by string) (*ApprovalResponse, error) {
	return s.decide(ctx, approvalID, by, "Approve", func(a *approval.Approval, now time.Time) error {
		return a.Approve(by, req.Remarks, now)
	})
}

// Reject refuses a pending approval. Remarks are required.
func (s *ApprovalService) Reject(ctx context.Context, approvalID string, req DecisionRequest, by string) (*ApprovalResponse, error) {
	return s.decide(ctx, approvalID, by, "Reject", func(a *approval.Approval, now time.Time) error {
		return a.Reject(by, req.Remarks, now)
	})
}

func (s *ApprovalService) decide(ctx context.Context, approvalID, by, method string, fn func(*approval.Approval, time.Time) error) (*ApprovalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "approval", method)
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrApprovalID, approvalID)

	var a *approval.Approval
	err := s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		var err error
		a, err = repos.Approvals().FindByApprovalID(ctx, approvalID)
		if err != nil {
			return err
		}
		if err := fn(a, s.now()); err != nil {
			return err
		}
		return repos.Approvals().Save(ctx, a)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("approval decided",
		zap.String("approval_id", a.ApprovalID),
		zap.String("status", string(a.Status)),
		zap.String("by", by),
	)
	resp := ToApprovalResponse(a)
	return &resp, nil
}

// Get returns an approval by code
func (s *ApprovalService) Get(ctx context.Context, approvalID string) (*ApprovalResponse, error) {
	a, err := s.repos.Approvals().FindByApprovalID(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	resp := ToApprovalResponse(a)
	return &resp, nil
}
