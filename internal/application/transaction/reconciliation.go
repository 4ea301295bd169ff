package transaction

import (
	"context"
	"fmt"

	assetapp "github.com/bizops/ledger/internal/application/asset"
	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/transaction"
	"golang.org/x/sync/errgroup"
)

// check runs the read-only lookups a transaction depends on concurrently,
// outside the write transaction. The payment record is only checked once
// the counterparty is known. Failures are reported in validation order:
// approval, then counterparty and payment, then the detail block.
func (s *TransactionService) check(ctx context.Context, kind transaction.Kind, h *transaction.Header) error {
	var (
		g    errgroup.Group
		errs [3]error
	)
	g.Go(func() error {
		errs[0] = s.checkApproval(ctx, kind, h)
		return nil
	})
	if kind.HasReference() {
		g.Go(func() error {
			if errs[1] = s.checkCounterparty(ctx, kind, h.CounterpartyID); errs[1] == nil {
				errs[1] = s.checkPayment(ctx, kind, h)
			}
			return nil
		})
	}
	g.Go(func() error {
		errs[2] = s.checkDetail(ctx, h)
		return nil
	})
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *TransactionService) checkApproval(ctx context.Context, kind transaction.Kind, h *transaction.Header) error {
	a, err := s.repos.Approvals().FindByApprovalID(ctx, h.ApprovalID)
	if err != nil {
		if shared.IsNotFound(err) {
			return approval.ErrInvalidApproval
		}
		return err
	}
	return a.Authorize(kind.ApprovalPolicy(), h.Amount)
}

func (s *TransactionService) checkCounterparty(ctx context.Context, kind transaction.Kind, id string) error {
	dir := s.repos.Directory()
	exists, label := dir.VendorExists, "Vendor"
	if kind == transaction.KindSale {
		exists, label = dir.CustomerExists, "Customer"
	}
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewNotFoundError(fmt.Sprintf("%s %s", label, id))
	}
	return nil
}

func (s *TransactionService) checkPayment(ctx context.Context, kind transaction.Kind, h *transaction.Header) error {
	p, err := s.repos.Payments().FindByPaymentID(ctx, h.PaymentID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewNotFoundError(fmt.Sprintf("Payment record %s", h.PaymentID))
		}
		return err
	}
	want := payment.DirectionVendor
	if kind == transaction.KindSale {
		want = payment.DirectionCustomer
	}
	if p.Direction != want {
		return shared.NewValidationError(fmt.Sprintf("Payment record %s is not a %s", p.PaymentID, want))
	}
	if !p.BelongsTo(h.CounterpartyID) {
		return shared.NewDomainError(shared.CodeCounterpartyMatch,
			fmt.Sprintf("Payment record %s does not belong to %s", p.PaymentID, h.CounterpartyID))
	}
	return nil
}

// checkDetail applies the rules of the detail block that need other records
func (s *TransactionService) checkDetail(ctx context.Context, h *transaction.Header) error {
	switch d := h.Detail.(type) {
	case transaction.AssetSale:
		a, err := s.repos.Assets().FindByAssetID(ctx, d.AssetID)
		if err != nil {
			return notFoundAs(err, "Asset "+d.AssetID)
		}
		return a.CheckSale()
	case transaction.SalaryPayment:
		if _, err := s.repos.Directory().FindEmployeeSalary(ctx, d.DepartmentID, d.EmployeeID, d.PayMonth); err != nil {
			return notFoundAs(err, fmt.Sprintf("Salary record for employee %s in %s", d.EmployeeID, d.PayMonth))
		}
	case transaction.LiabilityPayment:
		l, err := s.repos.Liabilities().FindByLiabilityID(ctx, d.LiabilityID)
		if err != nil {
			return notFoundAs(err, "Liability "+d.LiabilityID)
		}
		return l.CheckPayment(h.Amount)
	case transaction.MaintenancePayment:
		a, err := s.repos.Assets().FindByAssetID(ctx, d.AssetID)
		if err != nil {
			return notFoundAs(err, "Asset "+d.AssetID)
		}
		a.Evaluate(s.now())
		return a.CheckMaintenancePayment(d.MaintenanceID, d.MaintenanceType())
	}
	return nil
}

func notFoundAs(err error, resource string) error {
	if shared.IsNotFound(err) {
		return shared.NewNotFoundError(resource)
	}
	return err
}

// reconciliation is what applying a transaction touched
type reconciliation struct {
	touched  []shared.AggregateRoot
	assetIDs []string
}

// reconcile applies the side effects of t through repos. Every row it
// changes is locked first; any error rolls back t with them.
func (s *TransactionService) reconcile(ctx context.Context, repos scope.Repositories, t *transaction.Transaction) (reconciliation, error) {
	var out reconciliation

	if t.PaymentID != "" {
		p, err := repos.Payments().FindByPaymentIDForUpdate(ctx, t.PaymentID)
		if err != nil {
			return out, notFoundAs(err, "Payment record "+t.PaymentID)
		}
		if err := p.ApplyTransaction(t.Amount); err != nil {
			return out, err
		}
		if err := repos.Payments().Save(ctx, p); err != nil {
			return out, err
		}
		out.touched = append(out.touched, p)
	}

	switch d := t.Detail.(type) {
	case transaction.AssetPurchase:
		created, err := assetapp.CreateFromPurchase(ctx, repos, s.metrics, assetapp.Purchase{
			TransactionID: t.TransactionID,
			ReferenceID:   t.ReferenceID,
			VendorID:      t.CounterpartyID,
			Date:          t.Date,
			Amount:        t.Amount,
			Name:          d.AssetName,
			Type:          d.AssetType,
			Subtype:       d.Subtype,
			Quantity:      d.Quantity,
			CreatedBy:     t.CreatedBy,
		})
		if err != nil {
			return out, err
		}
		for _, a := range created {
			out.touched = append(out.touched, a)
			out.assetIDs = append(out.assetIDs, a.AssetID)
		}

	case transaction.AssetSale:
		if t.Status != transaction.StatusCompleted {
			break
		}
		a, err := repos.Assets().FindByAssetIDForUpdate(ctx, d.AssetID)
		if err != nil {
			return out, notFoundAs(err, "Asset "+d.AssetID)
		}
		if err := a.CompleteDisposal(t.TransactionID, t.Amount, t.Date); err != nil {
			return out, err
		}
		if err := repos.Assets().Save(ctx, a); err != nil {
			return out, err
		}
		out.touched = append(out.touched, a)

	case transaction.LiabilityPayment:
		l, err := repos.Liabilities().FindByLiabilityIDForUpdate(ctx, d.LiabilityID)
		if err != nil {
			return out, notFoundAs(err, "Liability "+d.LiabilityID)
		}
		if err := l.ApplyPayment(t.Amount, t.TransactionID); err != nil {
			s.metrics.RecordLiabilityPayment(ctx, false)
			return out, err
		}
		if err := repos.Liabilities().Save(ctx, l); err != nil {
			return out, err
		}
		s.metrics.RecordLiabilityPayment(ctx, true)
		out.touched = append(out.touched, l)

	case transaction.MaintenancePayment:
		a, err := repos.Assets().FindByAssetIDForUpdate(ctx, d.AssetID)
		if err != nil {
			return out, notFoundAs(err, "Asset "+d.AssetID)
		}
		a.Evaluate(s.now())
		if err := a.RecordMaintenanceCost(d.MaintenanceID, t.TransactionID, t.Amount); err != nil {
			return out, err
		}
		if err := repos.Assets().Save(ctx, a); err != nil {
			return out, err
		}
		out.touched = append(out.touched, a)
	}
	return out, nil
}
