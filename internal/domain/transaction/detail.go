package transaction

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/shared"
)

// ReferenceType selects the detail block, validation and reconciliation
// path of a transaction
type ReferenceType string

const (
	RefAsset       ReferenceType = "Asset"
	RefService     ReferenceType = "Service"
	RefSalary      ReferenceType = "Salary"
	RefLiability   ReferenceType = "Liability"
	RefRefund      ReferenceType = "Refund"
	RefInvestment  ReferenceType = "Investment"
	RefMaintenance ReferenceType = "Maintenance"
	RefRepair      ReferenceType = "Repair"
)

var referenceTypes = map[Kind][]ReferenceType{
	KindPurchase: {RefAsset, RefService},
	KindSale:     {RefAsset, RefService},
	KindInternal: {RefSalary, RefLiability, RefRefund, RefInvestment, RefMaintenance, RefRepair},
}

// AllowsReference reports whether kind accepts reference type r
func (k Kind) AllowsReference(r ReferenceType) bool {
	return slices.Contains(referenceTypes[k], r)
}

// AssetSaleType is the only transaction type an asset sale may carry
const AssetSaleType = "Asset Sale"

// Detail is the reference-type specific block of a transaction. Exactly one
// variant exists per reference type and each validates its own fields.
type Detail interface {
	ReferenceType() ReferenceType
	Validate() error
}

// AssetPurchase buys Quantity identical assets
type AssetPurchase struct {
	AssetName string     `json:"asset_name"`
	AssetType asset.Type `json:"asset_type"`
	Subtype   string     `json:"asset_subtype"`
	Quantity  int        `json:"quantity"`
}

func (AssetPurchase) ReferenceType() ReferenceType { return RefAsset }

func (d AssetPurchase) Validate() error {
	if strings.TrimSpace(d.AssetName) == "" {
		return shared.NewValidationError("Asset name is required")
	}
	if !d.AssetType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid asset type: %s", d.AssetType))
	}
	if !d.AssetType.HasSubtype(d.Subtype) {
		return shared.NewValidationError(fmt.Sprintf("Subtype %q does not belong to asset type %s", d.Subtype, d.AssetType))
	}
	if d.Quantity < 1 {
		return shared.NewValidationError("Quantity must be at least 1")
	}
	return nil
}

// ServicePurchase pays a vendor for a service
type ServicePurchase struct {
	Description string     `json:"service_description"`
	PeriodStart *time.Time `json:"service_period_start,omitempty"`
	PeriodEnd   *time.Time `json:"service_period_end,omitempty"`
}

func (ServicePurchase) ReferenceType() ReferenceType { return RefService }

func (d ServicePurchase) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return shared.NewValidationError("Service description is required")
	}
	if d.PeriodStart != nil && d.PeriodEnd != nil && d.PeriodEnd.Before(*d.PeriodStart) {
		return shared.NewValidationError("Service period end cannot be before its start")
	}
	return nil
}

// AssetSale sells an asset that is awaiting disposal
type AssetSale struct {
	AssetID         string `json:"asset_id"`
	TransactionType string `json:"transaction_type"`
}

func (AssetSale) ReferenceType() ReferenceType { return RefAsset }

func (d AssetSale) Validate() error {
	if strings.TrimSpace(d.AssetID) == "" {
		return shared.NewValidationError("Asset ID is required")
	}
	if d.TransactionType != AssetSaleType {
		return shared.NewValidationError(fmt.Sprintf("Transaction type must be %q", AssetSaleType))
	}
	return nil
}

// ServiceSale bills a customer for a service
type ServiceSale struct {
	Description string `json:"service_description"`
}

func (ServiceSale) ReferenceType() ReferenceType { return RefService }

func (d ServiceSale) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return shared.NewValidationError("Service description is required")
	}
	return nil
}

// SalaryPayment pays one employee for one month
type SalaryPayment struct {
	DepartmentID string `json:"department_id"`
	EmployeeID   string `json:"employee_id"`
	PayMonth     string `json:"pay_month"`
}

func (SalaryPayment) ReferenceType() ReferenceType { return RefSalary }

func (d SalaryPayment) Validate() error {
	if d.DepartmentID == "" || d.EmployeeID == "" {
		return shared.NewValidationError("Department and employee are required for salary payments")
	}
	if _, err := time.Parse("2006-01", d.PayMonth); err != nil {
		return shared.NewValidationError(fmt.Sprintf("Pay month must be YYYY-MM, got %q", d.PayMonth))
	}
	return nil
}

// LiabilityPayment pays down a liability
type LiabilityPayment struct {
	LiabilityID string `json:"liability_id"`
}

func (LiabilityPayment) ReferenceType() ReferenceType { return RefLiability }

func (d LiabilityPayment) Validate() error {
	if strings.TrimSpace(d.LiabilityID) == "" {
		return shared.NewValidationError("Liability ID is required")
	}
	return nil
}

// CounterpartyTransfer is a refund or an investment
type CounterpartyTransfer struct {
	Type         ReferenceType `json:"-"`
	Counterparty string        `json:"counterparty"`
	Note         string        `json:"note"`
}

func (d CounterpartyTransfer) ReferenceType() ReferenceType { return d.Type }

func (d CounterpartyTransfer) Validate() error {
	if d.Type != RefRefund && d.Type != RefInvestment {
		return shared.NewValidationError(fmt.Sprintf("Invalid transfer type: %s", d.Type))
	}
	if strings.TrimSpace(d.Counterparty) == "" {
		return shared.NewValidationError("Counterparty is required")
	}
	return nil
}

// MaintenancePayment pays for a service window on an asset
type MaintenancePayment struct {
	Type          ReferenceType `json:"-"`
	AssetID       string        `json:"asset_id"`
	MaintenanceID string        `json:"maintenance_id"`
}

func (d MaintenancePayment) ReferenceType() ReferenceType { return d.Type }

func (d MaintenancePayment) Validate() error {
	if d.Type != RefMaintenance && d.Type != RefRepair {
		return shared.NewValidationError(fmt.Sprintf("Invalid maintenance payment type: %s", d.Type))
	}
	if strings.TrimSpace(d.AssetID) == "" || strings.TrimSpace(d.MaintenanceID) == "" {
		return shared.NewValidationError("Asset ID and maintenance ID are required")
	}
	return nil
}

// MaintenanceType maps the reference type onto the asset's maintenance type
func (d MaintenancePayment) MaintenanceType() asset.MaintenanceType {
	if d.Type == RefRepair {
		return asset.MaintenanceTypeRepair
	}
	return asset.MaintenanceTypeMaintenance
}

// ValidateDetail checks that kind accepts refType, that the detail block
// matches it and that the block itself is valid
func ValidateDetail(kind Kind, refType ReferenceType, detail Detail) error {
	if !kind.AllowsReference(refType) {
		return shared.NewValidationError(fmt.Sprintf("Reference type %q is not allowed for %s transactions", refType, kind))
	}
	if detail == nil {
		return shared.NewValidationError(fmt.Sprintf("Detail block for reference type %q is required", refType))
	}
	if detail.ReferenceType() != refType {
		return shared.NewValidationError(fmt.Sprintf("Detail block %q does not match reference type %q", detail.ReferenceType(), refType))
	}
	if !matchesKind(kind, detail) {
		return shared.NewValidationError(fmt.Sprintf("Detail block is not valid for %s transactions", kind))
	}
	return detail.Validate()
}

func matchesKind(kind Kind, detail Detail) bool {
	switch detail.(type) {
	case AssetPurchase, ServicePurchase:
		return kind == KindPurchase
	case AssetSale, ServiceSale:
		return kind == KindSale
	case SalaryPayment, LiabilityPayment, CounterpartyTransfer, MaintenancePayment:
		return kind == KindInternal
	}
	return false
}

// DecodeDetail rebuilds the variant for kind and refType from its stored JSON
func DecodeDetail(kind Kind, refType ReferenceType, raw []byte) (Detail, error) {
	switch {
	case kind == KindPurchase && refType == RefAsset:
		return decode(raw, AssetPurchase{})
	case kind == KindPurchase && refType == RefService:
		return decode(raw, ServicePurchase{})
	case kind == KindSale && refType == RefAsset:
		return decode(raw, AssetSale{})
	case kind == KindSale && refType == RefService:
		return decode(raw, ServiceSale{})
	case kind == KindInternal && refType == RefSalary:
		return decode(raw, SalaryPayment{})
	case kind == KindInternal && refType == RefLiability:
		return decode(raw, LiabilityPayment{})
	case kind == KindInternal && (refType == RefRefund || refType == RefInvestment):
		return decode(raw, CounterpartyTransfer{Type: refType})
	case kind == KindInternal && (refType == RefMaintenance || refType == RefRepair):
		return decode(raw, MaintenancePayment{Type: refType})
	}
	return nil, fmt.Errorf("no detail variant for %s/%s", kind, refType)
}

func decode[T Detail](raw []byte, v T) (Detail, error) {
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s detail: %w", v.ReferenceType(), err)
	}
	return v, nil
}
