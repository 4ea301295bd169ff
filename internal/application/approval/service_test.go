package approval

import (
	"context"
	"testing"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code, de.Message)
}

func TestApprovalService_CreateAndDecide(t *testing.T) {
	l := testutil.NewLedger(t)
	svc := NewApprovalService(l.Repos, l.Scope)
	ctx := context.Background()

	ceiling := decimal.NewFromInt(50000)
	created, err := svc.Create(ctx, CreateApprovalRequest{
		Category:    "Vendor Payment",
		Description: "Q1 laptops",
		MaxAmount:   &ceiling,
	}, "asha")
	require.NoError(t, err)
	assert.Equal(t, "APR-00001", created.ApprovalID)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "asha", created.RequestedBy)

	approved, err := svc.Approve(ctx, "APR-00001", DecisionRequest{Remarks: "ok"}, "manager")
	require.NoError(t, err)
	assert.Equal(t, "Approved", approved.Status)
	assert.Equal(t, "manager", approved.DecidedBy)
	require.NotNil(t, approved.DecidedAt)

	got, err := svc.Get(ctx, "APR-00001")
	require.NoError(t, err)
	assert.Equal(t, "Approved", got.Status)

	t.Run("a decision is final", func(t *testing.T) {
		_, err := svc.Reject(ctx, "APR-00001", DecisionRequest{Remarks: "changed my mind"}, "manager")
		requireCode(t, err, shared.CodeInvalidState)
	})
}

func TestApprovalService_Reject(t *testing.T) {
	l := testutil.NewLedger(t)
	svc := NewApprovalService(l.Repos, l.Scope)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateApprovalRequest{Category: "Salary"}, "asha")
	require.NoError(t, err)

	_, err = svc.Reject(ctx, "APR-00001", DecisionRequest{}, "manager")
	requireCode(t, err, shared.CodeValidation)

	rejected, err := svc.Reject(ctx, "APR-00001", DecisionRequest{Remarks: "over budget"}, "manager")
	require.NoError(t, err)
	assert.Equal(t, "Rejected", rejected.Status)
	assert.Equal(t, "over budget", rejected.Remarks)

	_, err = svc.Approve(ctx, "APR-09999", DecisionRequest{}, "manager")
	assert.True(t, shared.IsNotFound(err))
}

func TestApprovalService_Create_InvalidCategory(t *testing.T) {
	l := testutil.NewLedger(t)
	svc := NewApprovalService(l.Repos, l.Scope)

	_, err := svc.Create(context.Background(), CreateApprovalRequest{Category: "Travel"}, "asha")
	requireCode(t, err, shared.CodeValidation)
	assert.Zero(t, l.CounterValue(t, "approval_Id"))
}
