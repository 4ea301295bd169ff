package asset

import (
	"fmt"
	"math"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Method is a depreciation method
type Method string

const (
	MethodStraightLine      Method = "Straight Line"
	MethodWrittenDown       Method = "Written Down Value"
	MethodDoubleDeclining   Method = "Double Declining Balance"
	MethodUnitsOfProduction Method = "Units of Production"
	MethodSumOfYearsDigits  Method = "Sum of Years Digits"
)

// methodAliases maps the short labels clients also send to the stored names
var methodAliases = map[Method]Method{
	"Written Down":        MethodWrittenDown,
	"WDV":                 MethodWrittenDown,
	"Double Declining":    MethodDoubleDeclining,
	"DDB":                 MethodDoubleDeclining,
	"SYD":                 MethodSumOfYearsDigits,
	"Sum-of-Years-Digits": MethodSumOfYearsDigits,
}

// Canonical resolves a short label to its stored method name
func (m Method) Canonical() Method {
	if c, ok := methodAliases[m]; ok {
		return c
	}
	return m
}

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	switch m.Canonical() {
	case MethodStraightLine, MethodWrittenDown, MethodDoubleDeclining,
		MethodUnitsOfProduction, MethodSumOfYearsDigits:
		return true
	}
	return false
}

// Basis is the cost basis depreciation is computed against
type Basis struct {
	Cost       decimal.Decimal
	Salvage    decimal.Decimal
	UsefulLife int
}

// Prior summarises the entries already on the ledger
type Prior struct {
	Count       int
	OpeningBook decimal.Decimal
	Accumulated decimal.Decimal
}

// Params carries method-specific inputs
type Params struct {
	TotalUnitsProduced *decimal.Decimal `json:"total_units_produced,omitempty"`
	UnitsUsedThisYear  *decimal.Decimal `json:"units_used_this_year,omitempty"`
}

// Result is one computed year of depreciation, rounded to storage precision
type Result struct {
	Annual      decimal.Decimal
	BookValue   decimal.Decimal
	Percent     decimal.Decimal
	Accumulated decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Compute returns the next year's charge for the given history. The charge
// is taken from the opening book value, never takes the book value below
// salvage and is never negative.
func Compute(method Method, basis Basis, prior Prior, params Params) (Result, error) {
	if err := basis.validate(); err != nil {
		return Result{}, err
	}
	if prior.Count < 0 {
		return Result{}, shared.NewValidationError("Prior entry count cannot be negative")
	}
	opening := prior.OpeningBook
	depreciable := basis.Cost.Sub(basis.Salvage)
	life := decimal.NewFromInt(int64(basis.UsefulLife))

	var annual decimal.Decimal
	switch method.Canonical() {
	case MethodStraightLine:
		annual = depreciable.Div(life)
	case MethodWrittenDown:
		ratio := basis.Salvage.Div(basis.Cost).InexactFloat64()
		rate := 1 - math.Pow(ratio, 1/float64(basis.UsefulLife))
		annual = opening.Mul(decimal.NewFromFloat(rate))
	case MethodDoubleDeclining:
		annual = opening.Mul(decimal.NewFromInt(2)).Div(life)
	case MethodUnitsOfProduction:
		if params.TotalUnitsProduced == nil || params.UnitsUsedThisYear == nil {
			return Result{}, shared.NewValidationError("Units of Production requires total units produced and units used this year")
		}
		if !params.TotalUnitsProduced.IsPositive() {
			return Result{}, shared.NewValidationError("Total units produced must be positive")
		}
		if params.UnitsUsedThisYear.IsNegative() {
			return Result{}, shared.NewValidationError("Units used this year cannot be negative")
		}
		annual = depreciable.Div(*params.TotalUnitsProduced).Mul(*params.UnitsUsedThisYear)
	case MethodSumOfYearsDigits:
		syd := decimal.NewFromInt(int64(basis.UsefulLife * (basis.UsefulLife + 1) / 2))
		remaining := decimal.NewFromInt(int64(basis.UsefulLife - prior.Count))
		annual = remaining.Div(syd).Mul(depreciable)
	default:
		return Result{}, shared.NewDomainError(shared.CodeUnsupportedMethod, fmt.Sprintf("Unsupported depreciation method: %s", method))
	}

	headroom := opening.Sub(basis.Salvage)
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}
	if annual.GreaterThan(headroom) {
		annual = headroom
	}
	if annual.IsNegative() {
		annual = decimal.Zero
	}

	annual = valueobject.Round(annual)
	book := valueobject.Round(opening.Sub(annual))
	return Result{
		Annual:      annual,
		BookValue:   book,
		Percent:     valueobject.Round(basis.Cost.Sub(book).Div(basis.Cost).Mul(hundred)),
		Accumulated: valueobject.Round(prior.Accumulated.Add(annual)),
	}, nil
}

func (b Basis) validate() error {
	if !b.Cost.IsPositive() {
		return shared.NewValidationError("Cost must be positive")
	}
	if b.Salvage.IsNegative() {
		return shared.NewValidationError("Salvage value cannot be negative")
	}
	if b.Salvage.GreaterThan(b.Cost) {
		return shared.NewValidationError("Salvage value cannot exceed cost")
	}
	if b.UsefulLife < 1 {
		return shared.NewValidationError("Useful life must be at least one year")
	}
	return nil
}

// DepreciationEntry is one appended year on the asset's depreciation ledger
type DepreciationEntry struct {
	DepreciationID string          `json:"depreciation_id"`
	Method         Method          `json:"method"`
	SalvageValue   decimal.Decimal `json:"salvage_value"`
	UsefulLife     int             `json:"useful_life"`
	Annual         decimal.Decimal `json:"annual_depreciation"`
	BookValue      decimal.Decimal `json:"book_value"`
	Percent        decimal.Decimal `json:"depreciation_percent"`
	Accumulated    decimal.Decimal `json:"accumulated_depreciation"`
	Params         Params          `json:"params"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// DepreciationRequest is the input for one depreciation run
type DepreciationRequest struct {
	Method       Method
	SalvageValue decimal.Decimal
	UsefulLife   int
	Params       Params
}

// PreviewDepreciation computes the next entry without appending it
func (a *Asset) PreviewDepreciation(req DepreciationRequest) (Result, error) {
	if a.Status == StatusDisposed {
		return Result{}, shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot depreciate disposed asset %s", a.AssetID))
	}
	return Compute(req.Method,
		Basis{Cost: a.PurchaseCost, Salvage: req.SalvageValue, UsefulLife: req.UsefulLife},
		Prior{Count: len(a.Depreciation), OpeningBook: a.BookValue(), Accumulated: a.AccumulatedDepreciation()},
		req.Params,
	)
}

// AddDepreciation computes and appends the next entry
func (a *Asset) AddDepreciation(depreciationID string, req DepreciationRequest, by string, now time.Time) (*DepreciationEntry, error) {
	res, err := a.PreviewDepreciation(req)
	if err != nil {
		return nil, err
	}
	if depreciationID == "" {
		return nil, shared.NewValidationError("Depreciation ID cannot be empty")
	}
	a.Depreciation = append(a.Depreciation, DepreciationEntry{
		DepreciationID: depreciationID,
		Method:         req.Method.Canonical(),
		SalvageValue:   valueobject.Round(req.SalvageValue),
		UsefulLife:     req.UsefulLife,
		Annual:         res.Annual,
		BookValue:      res.BookValue,
		Percent:        res.Percent,
		Accumulated:    res.Accumulated,
		Params:         req.Params,
		CreatedAt:      now,
		CreatedBy:      by,
	})
	a.Touch(now)
	a.IncrementVersion()
	entry := &a.Depreciation[len(a.Depreciation)-1]
	a.AddDomainEvent(NewDepreciationRecordedEvent(a, entry))
	return entry, nil
}
