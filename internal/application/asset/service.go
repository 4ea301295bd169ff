package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AssetService handles the asset lifecycle after creation: maintenance,
// disposal requests, depreciation and assignment. Assets themselves are
// created by purchase processing through CreateFromPurchase.
type AssetService struct {
	repos   scope.Repositories
	txScope scope.TransactionScope
	metrics *telemetry.LedgerMetrics
	now     func() time.Time
}

// NewAssetService creates a new AssetService. repos serves reads outside
// a transaction; every write goes through txScope.
func NewAssetService(repos scope.Repositories, txScope scope.TransactionScope) *AssetService {
	return &AssetService{
		repos:   repos,
		txScope: txScope,
		now:     time.Now,
	}
}

// SetMetrics sets the ledger metrics collector
func (s *AssetService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// Get returns an asset with its status re-evaluated at the current time.
// A changed status is persisted before returning.
func (s *AssetService) Get(ctx context.Context, assetID string) (*AssetResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "Get")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAssetID, assetID)

	a, err := s.repos.Assets().FindByAssetID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if a.Evaluate(now) {
		if err := s.persistEvaluated(ctx, []string{a.AssetID}, now); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}
	resp := ToAssetResponse(a)
	return &resp, nil
}

// List returns a page of assets, each re-evaluated like Get
func (s *AssetService) List(ctx context.Context, filter ListFilter) ([]AssetResponse, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "List")
	defer span.End()

	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	assets, total, err := s.repos.Assets().FindAll(ctx, domainFilter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, err
	}

	now := s.now()
	var changed []string
	for i := range assets {
		if assets[i].Evaluate(now) {
			changed = append(changed, assets[i].AssetID)
		}
	}
	if len(changed) > 0 {
		if err := s.persistEvaluated(ctx, changed, now); err != nil {
			telemetry.RecordError(span, err)
			return nil, 0, err
		}
	}

	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, ToAssetResponse(&assets[i]))
	}
	return out, total, nil
}

// persistEvaluated re-evaluates the given assets under a row lock and saves
// those whose status moved. Another request may have saved first, in which
// case Evaluate reports no change and nothing is written.
func (s *AssetService) persistEvaluated(ctx context.Context, assetIDs []string, now time.Time) error {
	var saved []shared.AggregateRoot
	err := s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		saved = saved[:0]
		for _, id := range assetIDs {
			a, err := repos.Assets().FindByAssetIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if !a.Evaluate(now) {
				continue
			}
			if err := repos.Assets().Save(ctx, a); err != nil {
				return err
			}
			saved = append(saved, a)
		}
		return nil
	})
	if err != nil {
		return err
	}
	scope.Publish(ctx, s.metrics, saved...)
	return nil
}

// ScheduleMaintenance records a service window (MAINT-) on an asset
func (s *AssetService) ScheduleMaintenance(ctx context.Context, assetID string, req ScheduleMaintenanceRequest, by string) (*AssetResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "ScheduleMaintenance")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAssetID, assetID)

	domainReq := asset.MaintenanceRequest{
		Type:         asset.MaintenanceType(req.Type),
		RequestType:  asset.RequestType(req.RequestType),
		ServiceStart: req.ServiceStart,
		ServiceEnd:   req.ServiceEnd,
		Provider:     req.Provider,
		Notes:        req.Notes,
	}

	var a *asset.Asset
	err := s.mutate(ctx, assetID, func(repos scope.Repositories, locked *asset.Asset, now time.Time) error {
		locked.Evaluate(now)
		if err := locked.CheckMaintenance(domainReq, now); err != nil {
			return err
		}
		maintenanceID, err := scope.NextCode(ctx, repos, s.metrics, sequence.Maintenance)
		if err != nil {
			return err
		}
		a = locked
		return locked.ScheduleMaintenance(maintenanceID, domainReq, by, now)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("maintenance scheduled",
		zap.String("asset_id", a.AssetID),
		zap.String("status", a.Status.String()),
	)
	scope.Publish(ctx, s.metrics, a)
	resp := ToAssetResponse(a)
	return &resp, nil
}

// RequestDisposal moves an Active asset to Awaiting Disposal with a DISP- record
func (s *AssetService) RequestDisposal(ctx context.Context, assetID string, req DisposalRequest, by string) (*AssetResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "RequestDisposal")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAssetID, assetID)

	var a *asset.Asset
	err := s.mutate(ctx, assetID, func(repos scope.Repositories, locked *asset.Asset, now time.Time) error {
		locked.Evaluate(now)
		if err := locked.CheckDisposalRequest(req.Reason); err != nil {
			return err
		}
		disposalID, err := scope.NextCode(ctx, repos, s.metrics, sequence.Disposal)
		if err != nil {
			return err
		}
		a = locked
		return locked.RequestDisposal(disposalID, req.Reason, by, now)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("disposal requested",
		zap.String("asset_id", a.AssetID),
		zap.String("disposal_id", a.Disposal.DisposalID),
	)
	scope.Publish(ctx, s.metrics, a)
	resp := ToAssetResponse(a)
	return &resp, nil
}

// AddDepreciation runs one year of depreciation and appends a DEP- entry
func (s *AssetService) AddDepreciation(ctx context.Context, assetID string, req DepreciationRequest, by string) (*DepreciationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "AddDepreciation")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAssetID, assetID, telemetry.SpanAttrMethod, req.Method)

	domainReq := req.toDomain()
	var (
		a     *asset.Asset
		entry *asset.DepreciationEntry
	)
	err := s.mutate(ctx, assetID, func(repos scope.Repositories, locked *asset.Asset, now time.Time) error {
		if _, err := locked.PreviewDepreciation(domainReq); err != nil {
			return err
		}
		depreciationID, err := scope.NextCode(ctx, repos, s.metrics, sequence.Depreciation)
		if err != nil {
			return err
		}
		a = locked
		entry, err = locked.AddDepreciation(depreciationID, domainReq, by, now)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordDepreciation(ctx, req.Method)
	logger.L(ctx).Info("depreciation recorded",
		zap.String("asset_id", a.AssetID),
		zap.String("depreciation_id", entry.DepreciationID),
		zap.String("method", req.Method),
		zap.String("book_value", entry.BookValue.StringFixed(2)),
	)
	scope.Publish(ctx, s.metrics, a)
	resp := ToDepreciationResponse(*entry)
	return &resp, nil
}

// ListDepreciation returns the depreciation ledger of an asset in order
func (s *AssetService) ListDepreciation(ctx context.Context, assetID string) ([]DepreciationResponse, error) {
	a, err := s.repos.Assets().FindByAssetID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return ToDepreciationResponses(a.Depreciation), nil
}

// Assign issues an asset to an employee of a department
func (s *AssetService) Assign(ctx context.Context, assetID string, req AssignRequest, by string) (*AssetResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "Assign")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAssetID, assetID)

	var a *asset.Asset
	err := s.mutate(ctx, assetID, func(repos scope.Repositories, locked *asset.Asset, now time.Time) error {
		dir := repos.Directory()
		ok, err := dir.DepartmentExists(ctx, req.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewNotFoundError(fmt.Sprintf("Department %s", req.DepartmentID))
		}
		ok, err = dir.EmployeeInDepartment(ctx, req.DepartmentID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewValidationError(fmt.Sprintf("Employee %s does not belong to department %s", req.EmployeeID, req.DepartmentID))
		}
		at := now
		if req.AssignedAt != nil {
			at = *req.AssignedAt
		}
		a = locked
		return locked.Assign(req.DepartmentID, req.EmployeeID, at)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("asset assigned",
		zap.String("asset_id", a.AssetID),
		zap.String("department_id", req.DepartmentID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("by", by),
	)
	scope.Publish(ctx, s.metrics, a)
	resp := ToAssetResponse(a)
	return &resp, nil
}

// Unassign returns an asset to the pool
func (s *AssetService) Unassign(ctx context.Context, assetID, by string) (*AssetResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "asset", "Unassign")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAssetID, assetID)

	var a *asset.Asset
	err := s.mutate(ctx, assetID, func(_ scope.Repositories, locked *asset.Asset, _ time.Time) error {
		a = locked
		return locked.Unassign()
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("asset unassigned", zap.String("asset_id", a.AssetID), zap.String("by", by))
	scope.Publish(ctx, s.metrics, a)
	resp := ToAssetResponse(a)
	return &resp, nil
}

// mutate loads assetID under a row lock, applies fn and saves the result,
// all in one transaction
func (s *AssetService) mutate(ctx context.Context, assetID string, fn func(repos scope.Repositories, a *asset.Asset, now time.Time) error) error {
	return s.txScope.Execute(ctx, func(repos scope.Repositories) error {
		a, err := repos.Assets().FindByAssetIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if err := fn(repos, a, s.now()); err != nil {
			return err
		}
		return repos.Assets().Save(ctx, a)
	})
}

func toDomainFilter(f ListFilter) (asset.Filter, error) {
	out := asset.Filter{
		Filter:       shared.DefaultFilter(),
		DepartmentID: f.DepartmentID,
		ReferenceID:  f.ReferenceID,
	}
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
	out.Search = f.Search

	if f.Status != "" {
		st := asset.Status(f.Status)
		if !st.IsValid() {
			return out, shared.NewValidationError(fmt.Sprintf("Invalid asset status: %s", f.Status))
		}
		out.Status = &st
	}
	if f.Type != "" {
		t := asset.Type(f.Type)
		if !t.IsValid() {
			return out, shared.NewValidationError(fmt.Sprintf("Invalid asset type: %s", f.Type))
		}
		out.Type = &t
	}
	if f.Assignment != "" {
		as := asset.AssignmentStatus(f.Assignment)
		if !as.IsValid() {
			return out, shared.NewValidationError(fmt.Sprintf("Invalid assignment status: %s", f.Assignment))
		}
		out.Assignment = &as
	}
	return out, nil
}
