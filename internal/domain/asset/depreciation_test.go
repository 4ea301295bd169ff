package asset

import (
	"math"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func freshPrior(cost decimal.Decimal) Prior {
	return Prior{OpeningBook: cost, Accumulated: decimal.Zero}
}

func TestCompute_StraightLineScenario(t *testing.T) {
	basis := Basis{Cost: d(100000), Salvage: d(10000), UsefulLife: 5}
	res, err := Compute(MethodStraightLine, basis, freshPrior(basis.Cost), Params{})
	require.NoError(t, err)

	assert.Equal(t, "18000.00", res.Annual.StringFixed(2))
	assert.Equal(t, "82000.00", res.BookValue.StringFixed(2))
	assert.Equal(t, "18.00", res.Percent.StringFixed(2))
	assert.Equal(t, "18000.00", res.Accumulated.StringFixed(2))
}

func TestCompute_Methods(t *testing.T) {
	basis := Basis{Cost: d(100000), Salvage: d(10000), UsefulLife: 5}
	wdvRate := 1 - math.Pow(0.1, 0.2)

	tests := []struct {
		name       string
		method     Method
		params     Params
		wantAnnual float64
	}{
		{"written down", MethodWrittenDown, Params{}, 100000 * wdvRate},
		{"double declining", MethodDoubleDeclining, Params{}, 40000},
		{"units of production", MethodUnitsOfProduction, Params{TotalUnitsProduced: ptr(d(10000)), UnitsUsedThisYear: ptr(d(2500))}, 22500},
		{"sum of years digits", MethodSumOfYearsDigits, Params{}, 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(tt.method, basis, freshPrior(basis.Cost), tt.params)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAnnual, res.Annual.InexactFloat64(), 0.01)
			assert.True(t, res.BookValue.Equal(basis.Cost.Sub(res.Annual)))
		})
	}
}

func TestCompute_Errors(t *testing.T) {
	basis := Basis{Cost: d(100000), Salvage: d(10000), UsefulLife: 5}

	t.Run("unsupported method", func(t *testing.T) {
		_, err := Compute("Annuity", basis, freshPrior(basis.Cost), Params{})
		require.Error(t, err)
		assert.Equal(t, shared.KindUnsupported, shared.KindOf(err))
	})

	t.Run("units of production without params", func(t *testing.T) {
		_, err := Compute(MethodUnitsOfProduction, basis, freshPrior(basis.Cost), Params{TotalUnitsProduced: ptr(d(100))})
		require.Error(t, err)
		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	})

	t.Run("invalid basis", func(t *testing.T) {
		bad := []Basis{
			{Cost: d(0), Salvage: d(0), UsefulLife: 5},
			{Cost: d(100), Salvage: d(-1), UsefulLife: 5},
			{Cost: d(100), Salvage: d(200), UsefulLife: 5},
			{Cost: d(100), Salvage: d(0), UsefulLife: 0},
		}
		for _, b := range bad {
			_, err := Compute(MethodStraightLine, b, freshPrior(b.Cost), Params{})
			assert.Equal(t, shared.KindValidation, shared.KindOf(err))
		}
	})
}

// Running every method well past its useful life must never take the book
// value under salvage or produce a negative charge.
func TestCompute_NeverBelowSalvage(t *testing.T) {
	bases := []Basis{
		{Cost: d(100000), Salvage: d(10000), UsefulLife: 5},
		{Cost: d(50000), Salvage: d(0), UsefulLife: 3},
		{Cost: decimal.RequireFromString("12345.67"), Salvage: decimal.RequireFromString("345.67"), UsefulLife: 7},
	}
	methods := []Method{MethodStraightLine, MethodWrittenDown, MethodDoubleDeclining, MethodUnitsOfProduction, MethodSumOfYearsDigits}
	params := Params{TotalUnitsProduced: ptr(d(1000)), UnitsUsedThisYear: ptr(d(400))}

	for _, basis := range bases {
		for _, m := range methods {
			prior := freshPrior(basis.Cost)
			for year := 0; year < basis.UsefulLife+3; year++ {
				res, err := Compute(m, basis, prior, params)
				require.NoError(t, err)
				assert.False(t, res.Annual.IsNegative(), "%s year %d annual", m, year)
				assert.True(t, res.BookValue.GreaterThanOrEqual(basis.Salvage), "%s year %d book %s", m, year, res.BookValue)
				prior = Prior{Count: prior.Count + 1, OpeningBook: res.BookValue, Accumulated: res.Accumulated}
			}
		}
	}
}

func TestAsset_AddDepreciation_Resumes(t *testing.T) {
	a := newTestAsset(t)
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	req := DepreciationRequest{Method: MethodDoubleDeclining, SalvageValue: d(10000), UsefulLife: 5}

	wantBooks := []string{"60000.00", "36000.00", "21600.00", "12960.00", "10000.00", "10000.00"}
	for i, want := range wantBooks {
		entry, err := a.AddDepreciation(sequenceCode("DEP", i+1), req, "user-1", now)
		require.NoError(t, err)
		assert.Equal(t, want, entry.BookValue.StringFixed(2), "year %d", i+1)
	}
	require.Len(t, a.Depreciation, len(wantBooks))
	last := a.Depreciation[len(a.Depreciation)-1]
	assert.True(t, last.Annual.IsZero())
	assert.Equal(t, "90000.00", last.Accumulated.StringFixed(2))
	assert.Equal(t, "90.00", last.Percent.StringFixed(2))
	assert.Equal(t, "user-1", last.CreatedBy)
	assert.True(t, a.BookValue().Equal(d(10000)))
}

func TestAsset_AddDepreciation_SYDUsesEntryCount(t *testing.T) {
	a := newTestAsset(t)
	req := DepreciationRequest{Method: MethodSumOfYearsDigits, SalvageValue: d(10000), UsefulLife: 5}

	want := []string{"30000.00", "24000.00", "18000.00", "12000.00", "6000.00", "0.00"}
	for i, w := range want {
		entry, err := a.AddDepreciation(sequenceCode("DEP", i+1), req, "user-1", time.Now())
		require.NoError(t, err)
		assert.Equal(t, w, entry.Annual.StringFixed(2), "year %d", i+1)
	}
}

func TestAsset_AddDepreciation_Disposed(t *testing.T) {
	a := newTestAsset(t)
	now := time.Now()
	require.NoError(t, a.RequestDisposal("DISP-00001", "sold", "user-1", now))
	require.NoError(t, a.CompleteDisposal("SAL-00001", d(1000), now))

	_, err := a.AddDepreciation("DEP-00001", DepreciationRequest{Method: MethodStraightLine, UsefulLife: 5}, "user-1", now)
	require.Error(t, err)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	assert.Empty(t, a.Depreciation)
}

func sequenceCode(prefix string, n int) string {
	return prefix + "-" + decimal.NewFromInt(int64(n)).String()
}

func TestMethod_ShortLabels(t *testing.T) {
	for label, want := range map[Method]Method{
		"Written Down":        MethodWrittenDown,
		"Double Declining":    MethodDoubleDeclining,
		"SYD":                 MethodSumOfYearsDigits,
		MethodStraightLine:    MethodStraightLine,
		"Declining Something": "Declining Something",
	} {
		assert.Equal(t, want, label.Canonical(), "label %q", label)
	}
	assert.True(t, Method("SYD").IsValid())
	assert.False(t, Method("Declining Something").IsValid())

	basis := Basis{Cost: d(100000), Salvage: d(10000), UsefulLife: 5}
	short, err := Compute("Double Declining", basis, freshPrior(basis.Cost), Params{})
	require.NoError(t, err)
	long, err := Compute(MethodDoubleDeclining, basis, freshPrior(basis.Cost), Params{})
	require.NoError(t, err)
	assert.Equal(t, long, short)

	a := newTestAsset(t)
	entry, err := a.AddDepreciation("DEP-00001", DepreciationRequest{Method: "SYD", SalvageValue: d(10000), UsefulLife: 5}, "user-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, MethodSumOfYearsDigits, entry.Method)
	assert.Equal(t, "30000.00", entry.Annual.StringFixed(2))
}
