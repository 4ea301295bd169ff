package liability

import (
	"math"
	"time"

	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InterestType selects how interest accrues on the principal
type InterestType string

const (
	InterestSimple   InterestType = "Simple"
	InterestCompound InterestType = "Compound"
	InterestNone     InterestType = "None"
)

// IsValid checks if the interest type is valid
func (t InterestType) IsValid() bool {
	switch t {
	case InterestSimple, InterestCompound, InterestNone:
		return true
	}
	return false
}

// PaymentTerms is the repayment cadence, which is also the compounding
// frequency for compound interest
type PaymentTerms string

const (
	TermsMonthly   PaymentTerms = "Monthly"
	TermsQuarterly PaymentTerms = "Quarterly"
	TermsYearly    PaymentTerms = "Yearly"
	TermsOneTime   PaymentTerms = "One-time"
)

// IsValid checks if the payment terms are valid
func (p PaymentTerms) IsValid() bool {
	switch p {
	case TermsMonthly, TermsQuarterly, TermsYearly, TermsOneTime:
		return true
	}
	return false
}

// PeriodsPerYear returns the compounding frequency k
func (p PaymentTerms) PeriodsPerYear() int {
	switch p {
	case TermsMonthly:
		return 12
	case TermsQuarterly:
		return 4
	default:
		return 1
	}
}

const daysPerYear = 365.25

// YearsBetween returns the elapsed time in 365.25-day years
func YearsBetween(start, due time.Time) float64 {
	return due.Sub(start).Hours() / 24 / daysPerYear
}

// TotalPayable returns principal plus interest accrued from start to due,
// rounded to two places.
//
//	None or zero rate: P
//	Simple:            P + P*r/100*years
//	Compound:          P*(1 + r/100/k)^(k*years)
func TotalPayable(principal, rate decimal.Decimal, kind InterestType, terms PaymentTerms, start, due time.Time) decimal.Decimal {
	if kind == InterestNone || rate.IsZero() {
		return valueobject.Round(principal)
	}
	years := decimal.NewFromFloat(YearsBetween(start, due))
	r := rate.Div(decimal.NewFromInt(100))

	switch kind {
	case InterestSimple:
		return valueobject.Round(principal.Add(principal.Mul(r).Mul(years)))
	case InterestCompound:
		k := float64(terms.PeriodsPerYear())
		growth := math.Pow(1+r.InexactFloat64()/k, k*years.InexactFloat64())
		return valueobject.Round(principal.Mul(decimal.NewFromFloat(growth)))
	}
	return valueobject.Round(principal)
}
