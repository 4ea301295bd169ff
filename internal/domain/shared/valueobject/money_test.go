package valueobject

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyINR(decimal.NewFromInt(100))
	b := NewMoneyINR(decimal.NewFromFloat(25.5))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "125.5", sum.Amount().String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "74.5", diff.Amount().String())

	usd, _ := NewMoney(decimal.NewFromInt(1), USD)
	_, err = a.Add(usd)
	assert.Error(t, err)
}

func TestMoney_Convert(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		rate    string
		want    string
		wantErr bool
	}{
		{"whole rate", "1000", "83", "83000.00", false},
		{"rounds half up to two places", "10.005", "1", "10.01", false},
		{"fractional rate", "250", "83.1234", "20780.85", false},
		{"zero rate rejected", "100", "0", "", true},
		{"negative rate rejected", "100", "-1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewMoney(decimal.RequireFromString(tt.amount), USD)
			require.NoError(t, err)
			got, err := src.Convert(decimal.RequireFromString(tt.rate), INR)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, INR, got.Currency())
			assert.Equal(t, tt.want, got.Amount().StringFixed(2))
		})
	}
}

func TestCurrency_IsValid(t *testing.T) {
	assert.True(t, INR.IsValid())
	assert.True(t, Currency("JPY").IsValid())
	assert.False(t, Currency("inr").IsValid())
	assert.False(t, Currency("RUPEE").IsValid())
	assert.False(t, Currency("XYZ").IsValid(), "well formed but not issued")
	assert.False(t, Currency("XXX").IsValid())
	assert.False(t, Currency("").IsValid())
}

func TestFormatAmount(t *testing.T) {
	got := FormatAmount(decimal.NewFromInt(5000), INR)
	assert.True(t, strings.HasPrefix(got, "₹"))
	assert.Contains(t, got, "5,000.00")

	assert.Equal(t, "$12.50", FormatAmount(decimal.NewFromFloat(12.5), USD))
	assert.Equal(t, "AED 1.00", FormatAmount(decimal.NewFromInt(1), AED))
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyINR(decimal.NewFromFloat(82000))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"82000.00","currency":"INR"}`, string(data))
	assert.Equal(t, "82000.00 INR", m.String())
}
