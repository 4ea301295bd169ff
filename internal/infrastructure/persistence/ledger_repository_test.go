package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/liability"
	"github.com/bizops/ledger/internal/domain/payment"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLiabilityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLiabilityRepository(newTestDB(t))

	l, err := liability.NewLiability("LIAB-00001", liability.Terms{
		Name:         "Term loan",
		Principal:    decimal.NewFromInt(100000),
		InterestType: liability.InterestNone,
		InterestRate: decimal.Zero,
		PaymentTerms: liability.TermsMonthly,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		AccountID:    "ACC-001",
		VendorID:     "VEN-001",
		ApprovalID:   "APR-00001",
	}, "tester")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, l))

	t.Run("round trips and keeps the paid amount", func(t *testing.T) {
		locked, err := repo.FindByLiabilityIDForUpdate(ctx, "LIAB-00001")
		require.NoError(t, err)
		require.NoError(t, locked.ApplyPayment(decimal.NewFromInt(2500), "INT_TXN-00001"))
		require.NoError(t, repo.Save(ctx, locked))

		found, err := repo.FindByLiabilityID(ctx, "LIAB-00001")
		require.NoError(t, err)
		assert.Equal(t, "Term loan", found.Name)
		assert.Equal(t, "2500", found.PaidAmount.String())
		assert.Equal(t, "97500", found.Remaining().String())
		assert.Equal(t, liability.TermsMonthly, found.PaymentTerms)
	})

	t.Run("filters by vendor", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, liability.Filter{VendorID: "VEN-001"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, items, 1)

		_, total, err = repo.FindAll(ctx, liability.Filter{VendorID: "VEN-404"})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("missing liability", func(t *testing.T) {
		_, err := repo.FindByLiabilityID(ctx, "LIAB-99999")
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormPaymentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPaymentRepository(newTestDB(t))

	p, err := payment.NewPayment("VEN_PAY-00001", payment.Request{
		Direction:      payment.DirectionVendor,
		CounterpartyID: "VEN-001",
		Amount:         decimal.NewFromInt(100),
		Currency:       valueobject.USD,
		ExchangeRate:   decimal.RequireFromString("83.25"),
		Description:    "Laptops",
	}, "tester")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByPaymentIDForUpdate(ctx, "VEN_PAY-00001")
	require.NoError(t, err)
	assert.Equal(t, payment.DirectionVendor, found.Direction)
	assert.Equal(t, valueobject.USD, found.Currency)
	assert.Equal(t, "8325", found.AmountLocal.String())
	assert.Equal(t, payment.StatusPending, found.Status)

	require.NoError(t, found.ApplyTransaction(decimal.NewFromInt(8325)))
	require.NoError(t, repo.Save(ctx, found))

	settled, err := repo.FindByPaymentID(ctx, "VEN_PAY-00001")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCompleted, settled.Status)
	assert.True(t, settled.Outstanding().IsZero())

	_, err = repo.FindByPaymentID(ctx, "CUST-PAY-00001")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormApprovalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormApprovalRepository(newTestDB(t))

	maxAmount := decimal.NewFromInt(5000)
	a, err := approval.NewApproval("APR-00001", approval.CategoryVendorPayment, "Office laptops", nil, &maxAmount, "requester")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))

	pending, err := repo.FindByApprovalID(ctx, "APR-00001")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPending, pending.Status)
	assert.Nil(t, pending.MinAmount)
	require.NotNil(t, pending.MaxAmount)
	assert.True(t, pending.MaxAmount.Equal(maxAmount))

	require.NoError(t, pending.Approve("manager", "ok", time.Now().UTC()))
	require.NoError(t, repo.Save(ctx, pending))

	approved, err := repo.FindByApprovalID(ctx, "APR-00001")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, approved.Status)
	assert.Equal(t, "manager", approved.DecidedBy)
	assert.NotNil(t, approved.DecidedAt)
	assert.NoError(t, approved.Authorize(approval.Policy{Allow: []approval.Category{approval.CategoryVendorPayment}}, decimal.NewFromInt(4999)))

	_, err = repo.FindByApprovalID(ctx, "APR-00002")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
