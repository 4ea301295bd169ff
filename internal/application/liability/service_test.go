package liability

import (
	"context"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/approval"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*LiabilityService, *testutil.Ledger) {
	l := testutil.NewLedger(t)
	l.SeedVendor(t, "V-1")
	l.SeedAccount(t, "ACC-LOANS")
	l.SeedApproval(t, "APR-00001", approval.CategoryLiability, true)
	l.SeedApproval(t, "APR-00002", approval.CategoryVendorPayment, true)
	l.SeedApproval(t, "APR-00003", approval.CategoryLiability, false)
	return NewLiabilityService(l.Repos, l.Scope), l
}

func validRequest() CreateLiabilityRequest {
	return CreateLiabilityRequest{
		Name:         "Equipment loan",
		Principal:    decimal.NewFromInt(100000),
		InterestType: "None",
		PaymentTerms: "Monthly",
		StartDate:    testutil.Date(2024, time.January, 1),
		DueDate:      testutil.Date(2025, time.January, 1),
		AccountID:    "ACC-LOANS",
		VendorID:     "V-1",
		ApprovalID:   "APR-00001",
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code, de.Message)
}

func TestLiabilityService_Create(t *testing.T) {
	svc, l := newService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validRequest(), "ravi")
	require.NoError(t, err)
	assert.Equal(t, "LIAB-00001", resp.LiabilityID)
	assert.Equal(t, "100000.00", resp.TotalPayable.StringFixed(2))
	assert.Equal(t, "100000.00", resp.Remaining.StringFixed(2))
	assert.True(t, resp.PaidAmount.IsZero())
	assert.False(t, resp.Settled)
	assert.Equal(t, "ravi", resp.CreatedBy)

	stored := l.Liability(t, "LIAB-00001")
	assert.Equal(t, "Equipment loan", stored.Name)

	t.Run("simple interest accrues over the term", func(t *testing.T) {
		req := validRequest()
		req.InterestType = "Simple"
		req.InterestRate = decimal.NewFromInt(10)
		resp, err := svc.Create(ctx, req, "ravi")
		require.NoError(t, err)
		assert.Equal(t, "LIAB-00002", resp.LiabilityID)
		assert.True(t, resp.TotalPayable.GreaterThan(decimal.NewFromInt(110000)))
		assert.True(t, resp.TotalPayable.LessThan(decimal.NewFromInt(110100)))
	})
}

func TestLiabilityService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateLiabilityRequest)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "approval for another purpose",
			mutate: func(r *CreateLiabilityRequest) { r.ApprovalID = "APR-00002" },
			check:  func(t *testing.T, err error) { requireCode(t, err, shared.CodeInvalidApproval) },
		},
		{
			name:   "pending approval",
			mutate: func(r *CreateLiabilityRequest) { r.ApprovalID = "APR-00003" },
			check:  func(t *testing.T, err error) { requireCode(t, err, shared.CodeInvalidApproval) },
		},
		{
			name:   "unknown approval",
			mutate: func(r *CreateLiabilityRequest) { r.ApprovalID = "APR-09999" },
			check:  func(t *testing.T, err error) { requireCode(t, err, shared.CodeInvalidApproval) },
		},
		{
			name:   "unknown vendor",
			mutate: func(r *CreateLiabilityRequest) { r.VendorID = "V-404" },
			check:  func(t *testing.T, err error) { assert.True(t, shared.IsNotFound(err)) },
		},
		{
			name:   "unknown account",
			mutate: func(r *CreateLiabilityRequest) { r.AccountID = "ACC-404" },
			check:  func(t *testing.T, err error) { assert.True(t, shared.IsNotFound(err)) },
		},
		{
			name: "due before start",
			mutate: func(r *CreateLiabilityRequest) {
				r.DueDate = r.StartDate.AddDate(0, -1, 0)
			},
			check: func(t *testing.T, err error) { requireCode(t, err, shared.CodeValidation) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, l := newService(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req, "ravi")
			require.Error(t, err)
			tt.check(t, err)
			assert.Zero(t, l.CounterValue(t, "liability_Id"))
		})
	}
}

func TestLiabilityService_GetAndList(t *testing.T) {
	svc, l := newService(t)
	ctx := context.Background()
	l.SeedVendor(t, "V-2")

	_, err := svc.Create(ctx, validRequest(), "ravi")
	require.NoError(t, err)
	other := validRequest()
	other.Name = "Overdraft"
	other.VendorID = "V-2"
	_, err = svc.Create(ctx, other, "ravi")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "LIAB-00002")
	require.NoError(t, err)
	assert.Equal(t, "Overdraft", got.Name)

	_, err = svc.Get(ctx, "LIAB-09999")
	assert.True(t, shared.IsNotFound(err))

	items, total, err := svc.List(ctx, ListFilter{VendorID: "V-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "LIAB-00001", items[0].LiabilityID)
}
