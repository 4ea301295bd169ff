package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetModel is the persistence model for the Asset aggregate root.
// The disposal sub-record is stored inline; maintenance windows and
// depreciation entries live in child tables.
type AssetModel struct {
	AggregateModel
	AssetID               string                 `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name                  string                 `gorm:"type:varchar(200);not null"`
	Type                  asset.Type             `gorm:"type:varchar(50);not null;index"`
	Subtype               string                 `gorm:"type:varchar(50);not null"`
	AssignmentStatus      asset.AssignmentStatus `gorm:"type:varchar(20);not null;default:'Unassigned';index"`
	DepartmentID          string                 `gorm:"type:varchar(32);index"`
	EmployeeID            string                 `gorm:"type:varchar(32)"`
	AssignedAt            *time.Time
	Status                asset.Status    `gorm:"type:varchar(30);not null;default:'Active';index"`
	PurchaseCost          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PurchaseDate          time.Time       `gorm:"not null"`
	VendorID              string          `gorm:"type:varchar(32)"`
	PurchaseTransactionID string          `gorm:"type:varchar(32);not null;index"`
	ReferenceID           string          `gorm:"type:varchar(32);index"`
	BatchSuffix           string          `gorm:"type:varchar(16)"`

	DisposalID        string `gorm:"type:varchar(32)"`
	DisposalReason    string `gorm:"type:text"`
	DisposalRequestAt *time.Time
	DisposalRequestBy string           `gorm:"type:varchar(100)"`
	SaleTransactionID string           `gorm:"type:varchar(32)"`
	SaleAmount        *decimal.Decimal `gorm:"type:decimal(18,2)"`
	SaleDate          *time.Time

	Maintenance  []AssetMaintenanceModel  `gorm:"foreignKey:AssetUUID;references:ID"`
	Depreciation []AssetDepreciationModel `gorm:"foreignKey:AssetUUID;references:ID"`
}

// TableName returns the table name for GORM
func (AssetModel) TableName() string {
	return "assets"
}

// AssetMaintenanceModel is one service window row
type AssetMaintenanceModel struct {
	MaintenanceID string                `gorm:"type:varchar(32);primaryKey"`
	AssetUUID     uuid.UUID             `gorm:"column:asset_id;type:uuid;not null;index"`
	Type          asset.MaintenanceType `gorm:"type:varchar(20);not null"`
	RequestType   asset.RequestType     `gorm:"type:varchar(20);not null"`
	RequestStatus asset.RequestStatus   `gorm:"type:varchar(20);not null"`
	ServiceStart  time.Time             `gorm:"not null"`
	ServiceEnd    time.Time             `gorm:"not null"`
	Provider      string                `gorm:"type:varchar(200)"`
	Notes         string                `gorm:"type:text"`
	Cost          decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	TransactionID string                `gorm:"type:varchar(32)"`
	CreatedAt     time.Time             `gorm:"not null"`
	CreatedBy     string                `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AssetMaintenanceModel) TableName() string {
	return "asset_maintenance"
}

// AssetDepreciationModel is one appended depreciation year
type AssetDepreciationModel struct {
	DepreciationID string          `gorm:"type:varchar(32);primaryKey"`
	AssetUUID      uuid.UUID       `gorm:"column:asset_id;type:uuid;not null;index"`
	Method         asset.Method    `gorm:"type:varchar(40);not null"`
	SalvageValue   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UsefulLife     int             `gorm:"not null"`
	Annual         decimal.Decimal `gorm:"column:annual_depreciation;type:decimal(18,2);not null"`
	BookValue      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Percent        decimal.Decimal `gorm:"column:depreciation_percent;type:decimal(9,2);not null"`
	Accumulated    decimal.Decimal `gorm:"column:accumulated_depreciation;type:decimal(18,2);not null"`
	Params         string          `gorm:"type:jsonb"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	CreatedBy      string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AssetDepreciationModel) TableName() string {
	return "asset_depreciation"
}

// ToDomain converts the persistence model to a domain Asset. A depreciation
// row whose params column cannot be decoded is an error.
func (m *AssetModel) ToDomain() (*asset.Asset, error) {
	a := &asset.Asset{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AssetID:           m.AssetID,
		Name:              m.Name,
		Type:              m.Type,
		Subtype:           m.Subtype,
		Assignment: asset.Assignment{
			Status:       m.AssignmentStatus,
			DepartmentID: m.DepartmentID,
			EmployeeID:   m.EmployeeID,
			AssignedAt:   m.AssignedAt,
		},
		Status:                m.Status,
		PurchaseCost:          m.PurchaseCost,
		PurchaseDate:          m.PurchaseDate,
		VendorID:              m.VendorID,
		PurchaseTransactionID: m.PurchaseTransactionID,
		ReferenceID:           m.ReferenceID,
		BatchSuffix:           m.BatchSuffix,
	}
	if m.DisposalID != "" {
		d := &asset.Disposal{
			DisposalID:        m.DisposalID,
			Reason:            m.DisposalReason,
			RequestedBy:       m.DisposalRequestBy,
			SaleTransactionID: m.SaleTransactionID,
			SaleAmount:        m.SaleAmount,
			SaleDate:          m.SaleDate,
		}
		if m.DisposalRequestAt != nil {
			d.RequestDate = *m.DisposalRequestAt
		}
		a.Disposal = d
	}
	for _, mm := range m.Maintenance {
		a.Maintenance = append(a.Maintenance, asset.MaintenanceRecord{
			MaintenanceID: mm.MaintenanceID,
			Type:          mm.Type,
			RequestType:   mm.RequestType,
			RequestStatus: mm.RequestStatus,
			ServiceStart:  mm.ServiceStart,
			ServiceEnd:    mm.ServiceEnd,
			Provider:      mm.Provider,
			Notes:         mm.Notes,
			Cost:          mm.Cost,
			TransactionID: mm.TransactionID,
			CreatedAt:     mm.CreatedAt,
			CreatedBy:     mm.CreatedBy,
		})
	}
	for _, dm := range m.Depreciation {
		var params asset.Params
		if dm.Params != "" {
			if err := json.Unmarshal([]byte(dm.Params), &params); err != nil {
				return nil, fmt.Errorf("asset %s depreciation %s params: %w", m.AssetID, dm.DepreciationID, err)
			}
		}
		a.Depreciation = append(a.Depreciation, asset.DepreciationEntry{
			DepreciationID: dm.DepreciationID,
			Method:         dm.Method,
			SalvageValue:   dm.SalvageValue,
			UsefulLife:     dm.UsefulLife,
			Annual:         dm.Annual,
			BookValue:      dm.BookValue,
			Percent:        dm.Percent,
			Accumulated:    dm.Accumulated,
			Params:         params,
			CreatedAt:      dm.CreatedAt,
			CreatedBy:      dm.CreatedBy,
		})
	}
	return a, nil
}

// FromDomain populates the persistence model from a domain Asset
func (m *AssetModel) FromDomain(a *asset.Asset) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AssetID = a.AssetID
	m.Name = a.Name
	m.Type = a.Type
	m.Subtype = a.Subtype
	m.AssignmentStatus = a.Assignment.Status
	m.DepartmentID = a.Assignment.DepartmentID
	m.EmployeeID = a.Assignment.EmployeeID
	m.AssignedAt = a.Assignment.AssignedAt
	m.Status = a.Status
	m.PurchaseCost = a.PurchaseCost
	m.PurchaseDate = a.PurchaseDate
	m.VendorID = a.VendorID
	m.PurchaseTransactionID = a.PurchaseTransactionID
	m.ReferenceID = a.ReferenceID
	m.BatchSuffix = a.BatchSuffix

	if d := a.Disposal; d != nil {
		requested := d.RequestDate
		m.DisposalID = d.DisposalID
		m.DisposalReason = d.Reason
		m.DisposalRequestAt = &requested
		m.DisposalRequestBy = d.RequestedBy
		m.SaleTransactionID = d.SaleTransactionID
		m.SaleAmount = d.SaleAmount
		m.SaleDate = d.SaleDate
	}

	m.Maintenance = make([]AssetMaintenanceModel, len(a.Maintenance))
	for i, r := range a.Maintenance {
		m.Maintenance[i] = AssetMaintenanceModel{
			MaintenanceID: r.MaintenanceID,
			AssetUUID:     a.ID,
			Type:          r.Type,
			RequestType:   r.RequestType,
			RequestStatus: r.RequestStatus,
			ServiceStart:  r.ServiceStart,
			ServiceEnd:    r.ServiceEnd,
			Provider:      r.Provider,
			Notes:         r.Notes,
			Cost:          r.Cost,
			TransactionID: r.TransactionID,
			CreatedAt:     r.CreatedAt,
			CreatedBy:     r.CreatedBy,
		}
	}
	m.Depreciation = make([]AssetDepreciationModel, len(a.Depreciation))
	for i, e := range a.Depreciation {
		params, _ := json.Marshal(e.Params)
		m.Depreciation[i] = AssetDepreciationModel{
			DepreciationID: e.DepreciationID,
			AssetUUID:      a.ID,
			Method:         e.Method,
			SalvageValue:   e.SalvageValue,
			UsefulLife:     e.UsefulLife,
			Annual:         e.Annual,
			BookValue:      e.BookValue,
			Percent:        e.Percent,
			Accumulated:    e.Accumulated,
			Params:         string(params),
			CreatedAt:      e.CreatedAt,
			CreatedBy:      e.CreatedBy,
		}
	}
}

// AssetModelFromDomain creates a new persistence model from a domain Asset
func AssetModelFromDomain(a *asset.Asset) *AssetModel {
	m := &AssetModel{}
	m.FromDomain(a)
	return m
}
