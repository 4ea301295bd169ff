package payment

import (
	"context"
	"testing"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_CreateVendor(t *testing.T) {
	l := testutil.NewLedger(t)
	l.SeedVendor(t, "V-1")
	svc := NewPaymentService(l.Repos, l.Scope)
	ctx := context.Background()

	resp, err := svc.CreateVendor(ctx, CreatePaymentRequest{
		CounterpartyID: "V-1",
		Amount:         decimal.NewFromInt(25000),
	}, "ravi")
	require.NoError(t, err)
	assert.Equal(t, "VEN_PAY-00001", resp.PaymentID)
	assert.Equal(t, "Vendor Payment", resp.Direction)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "25000.00", resp.AmountLocal.StringFixed(2))
	assert.Equal(t, "Pending", resp.Status)

	got, err := svc.Get(ctx, "VEN_PAY-00001")
	require.NoError(t, err)
	assert.Equal(t, "V-1", got.CounterpartyID)
	assert.Equal(t, "25000.00", got.Outstanding.StringFixed(2))
}

func TestPaymentService_CreateCustomer_ForeignCurrency(t *testing.T) {
	l := testutil.NewLedger(t)
	l.SeedCustomer(t, "C-1")
	svc := NewPaymentService(l.Repos, l.Scope)

	rate := decimal.RequireFromString("83.125")
	resp, err := svc.CreateCustomer(context.Background(), CreatePaymentRequest{
		CounterpartyID: "C-1",
		Amount:         decimal.NewFromInt(100),
		Currency:       "usd",
		ExchangeRate:   &rate,
	}, "ravi")
	require.NoError(t, err)
	assert.Equal(t, "CUST-PAY-00001", resp.PaymentID)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, "8312.50", resp.AmountLocal.StringFixed(2))
}

func TestPaymentService_Create_Rejections(t *testing.T) {
	l := testutil.NewLedger(t)
	l.SeedVendor(t, "V-1")
	svc := NewPaymentService(l.Repos, l.Scope)
	ctx := context.Background()

	_, err := svc.CreateVendor(ctx, CreatePaymentRequest{CounterpartyID: "V-404", Amount: decimal.NewFromInt(10)}, "ravi")
	assert.True(t, shared.IsNotFound(err))

	_, err = svc.CreateCustomer(ctx, CreatePaymentRequest{CounterpartyID: "V-1", Amount: decimal.NewFromInt(10)}, "ravi")
	assert.True(t, shared.IsNotFound(err), "a vendor is not a customer")

	_, err = svc.CreateVendor(ctx, CreatePaymentRequest{CounterpartyID: "V-1", Amount: decimal.Zero}, "ravi")
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))

	_, err = svc.CreateVendor(ctx, CreatePaymentRequest{CounterpartyID: "V-1", Amount: decimal.NewFromInt(10), Currency: "XYZ"}, "ravi")
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))

	assert.Zero(t, l.CounterValue(t, "vendor_payment"))
	assert.Zero(t, l.CounterValue(t, "customer_payment"))
}
