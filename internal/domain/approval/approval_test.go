package approval

import (
	"errors"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func approved(t *testing.T, c Category) *Approval {
	t.Helper()
	a, err := NewApproval("APR-00001", c, "test", nil, nil, "user-1")
	require.NoError(t, err)
	require.NoError(t, a.Approve("manager", "", time.Now()))
	return a
}

func TestNewApproval(t *testing.T) {
	a, err := NewApproval("APR-00001", CategoryVendorPayment, " laptops ", amount(0), amount(50000), "user-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, "laptops", a.Description)

	_, err = NewApproval("APR-00001", "Bonus", "", nil, nil, "user-1")
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))

	_, err = NewApproval("APR-00001", CategoryGeneral, "", amount(10), amount(5), "user-1")
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestApproval_Decide(t *testing.T) {
	a, err := NewApproval("APR-00001", CategorySalary, "", nil, nil, "user-1")
	require.NoError(t, err)

	assert.Error(t, a.Reject("manager", "", time.Now()), "remarks required")
	require.NoError(t, a.Reject("manager", "over budget", time.Now()))
	assert.Equal(t, StatusRejected, a.Status)
	assert.Equal(t, "manager", a.DecidedBy)

	err = a.Approve("manager", "", time.Now())
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestPolicy_Permits(t *testing.T) {
	purchase := Policy{Allow: []Category{CategoryVendorPayment}}
	internal := Policy{Deny: []Category{CategoryAsset, CategoryCustomerPayment, CategoryVendorPayment}}

	assert.True(t, purchase.Permits(CategoryVendorPayment))
	assert.False(t, purchase.Permits(CategoryAsset))

	assert.True(t, internal.Permits(CategorySalary))
	assert.True(t, internal.Permits(CategoryGeneral))
	assert.False(t, internal.Permits(CategoryAsset))
	assert.False(t, internal.Permits(CategoryVendorPayment))
	assert.False(t, internal.Permits("Unknown"))
}

func TestApproval_Authorize(t *testing.T) {
	internal := Policy{Deny: []Category{CategoryAsset, CategoryCustomerPayment, CategoryVendorPayment}}

	t.Run("asset approval cannot authorize internal transaction", func(t *testing.T) {
		err := approved(t, CategoryAsset).Authorize(internal, decimal.NewFromInt(100))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidApproval))
		assert.Contains(t, err.Error(), "Invalid or disallowed approval")
	})

	t.Run("pending approval", func(t *testing.T) {
		a, err := NewApproval("APR-00002", CategorySalary, "", nil, nil, "user-1")
		require.NoError(t, err)
		assert.ErrorIs(t, a.Authorize(internal, decimal.NewFromInt(100)), ErrInvalidApproval)
	})

	t.Run("amount outside range", func(t *testing.T) {
		a, err := NewApproval("APR-00003", CategoryRefund, "", amount(100), amount(500), "user-1")
		require.NoError(t, err)
		require.NoError(t, a.Approve("manager", "", time.Now()))
		assert.NoError(t, a.Authorize(internal, decimal.NewFromInt(500)))
		assert.ErrorIs(t, a.Authorize(internal, decimal.NewFromInt(501)), ErrInvalidApproval)
		assert.ErrorIs(t, a.Authorize(internal, decimal.NewFromInt(99)), ErrInvalidApproval)
	})

	t.Run("compatible approval", func(t *testing.T) {
		assert.NoError(t, approved(t, CategorySalary).Authorize(internal, decimal.NewFromInt(100)))
	})
}
