package asset

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Assignment records who an asset is issued to
type Assignment struct {
	Status       AssignmentStatus `json:"status"`
	DepartmentID string           `json:"department_id,omitempty"`
	EmployeeID   string           `json:"employee_id,omitempty"`
	AssignedAt   *time.Time       `json:"assigned_at,omitempty"`
}

// Source carries the purchase data an asset is created from
type Source struct {
	Name                  string
	Type                  Type
	Subtype               string
	UnitCost              decimal.Decimal
	PurchaseDate          time.Time
	VendorID              string
	PurchaseTransactionID string
	ReferenceID           string
	BatchSuffix           string
}

// Asset is the aggregate root for a physical or intangible company asset.
// Assets only come into existence through a qualifying purchase.
type Asset struct {
	shared.BaseAggregateRoot
	AssetID               string              `json:"asset_id"`
	Name                  string              `json:"name"`
	Type                  Type                `json:"type"`
	Subtype               string              `json:"subtype"`
	Assignment            Assignment          `json:"assignment"`
	Status                Status              `json:"status"`
	PurchaseCost          decimal.Decimal     `json:"purchase_cost"`
	PurchaseDate          time.Time           `json:"purchase_date"`
	VendorID              string              `json:"vendor_id"`
	PurchaseTransactionID string              `json:"purchase_transaction_id"`
	ReferenceID           string              `json:"reference_id"`
	BatchSuffix           string              `json:"batch_suffix"`
	Maintenance           []MaintenanceRecord `json:"maintenance_details"`
	Depreciation          []DepreciationEntry `json:"depreciation_details"`
	Disposal              *Disposal           `json:"disposal_details,omitempty"`
}

// NewAsset creates an Active, unassigned asset from purchase data
func NewAsset(assetID string, src Source, createdBy string) (*Asset, error) {
	if strings.TrimSpace(assetID) == "" {
		return nil, shared.NewValidationError("Asset ID cannot be empty")
	}
	if strings.TrimSpace(src.Name) == "" {
		return nil, shared.NewValidationError("Asset name is required")
	}
	if !src.Type.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid asset type: %s", src.Type))
	}
	if !src.Type.HasSubtype(src.Subtype) {
		return nil, shared.NewValidationError(fmt.Sprintf("Subtype %q does not belong to asset type %s", src.Subtype, src.Type))
	}
	if src.UnitCost.IsNegative() {
		return nil, shared.NewValidationError("Purchase cost cannot be negative")
	}
	if src.PurchaseTransactionID == "" {
		return nil, shared.NewValidationError("Purchase transaction ID is required")
	}

	a := &Asset{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(createdBy),
		AssetID:               assetID,
		Name:                  strings.TrimSpace(src.Name),
		Type:                  src.Type,
		Subtype:               src.Subtype,
		Assignment:            Assignment{Status: AssignmentUnassigned},
		Status:                StatusActive,
		PurchaseCost:          valueobject.Round(src.UnitCost),
		PurchaseDate:          src.PurchaseDate,
		VendorID:              src.VendorID,
		PurchaseTransactionID: src.PurchaseTransactionID,
		ReferenceID:           src.ReferenceID,
		BatchSuffix:           src.BatchSuffix,
	}
	a.AddDomainEvent(NewCreatedEvent(a))
	return a, nil
}

// UnitCost splits a purchase amount evenly over quantity units
func UnitCost(amount decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, shared.NewValidationError("Quantity must be at least 1")
	}
	return valueobject.Round(amount.Div(decimal.NewFromInt(int64(quantity)))), nil
}

// Assign issues the asset to an employee of a department
func (a *Asset) Assign(departmentID, employeeID string, at time.Time) error {
	if a.Status.InDisposalBranch() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot assign asset in %s status", a.Status))
	}
	if departmentID == "" || employeeID == "" {
		return shared.NewValidationError("Department and employee are required for assignment")
	}
	a.Assignment = Assignment{
		Status:       AssignmentAssigned,
		DepartmentID: departmentID,
		EmployeeID:   employeeID,
		AssignedAt:   &at,
	}
	a.Touch(time.Now())
	a.IncrementVersion()
	return nil
}

// Unassign returns the asset to the pool
func (a *Asset) Unassign() error {
	if a.Status.InDisposalBranch() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot unassign asset in %s status", a.Status))
	}
	if a.Assignment.Status == AssignmentUnassigned {
		return nil
	}
	a.Assignment = Assignment{Status: AssignmentUnassigned}
	a.Touch(time.Now())
	a.IncrementVersion()
	return nil
}

// BookValue returns the closing value of the latest depreciation entry,
// or the purchase cost when nothing has been depreciated yet.
func (a *Asset) BookValue() decimal.Decimal {
	if n := len(a.Depreciation); n > 0 {
		return a.Depreciation[n-1].BookValue
	}
	return a.PurchaseCost
}

// AccumulatedDepreciation returns the total charged so far
func (a *Asset) AccumulatedDepreciation() decimal.Decimal {
	if n := len(a.Depreciation); n > 0 {
		return a.Depreciation[n-1].Accumulated
	}
	return decimal.Zero
}

// setStatus moves the asset to status and records the change
func (a *Asset) setStatus(status Status, now time.Time) {
	if a.Status == status {
		return
	}
	from := a.Status
	a.Status = status
	a.Touch(now)
	a.IncrementVersion()
	a.AddDomainEvent(NewStatusChangedEvent(a, from))
}
