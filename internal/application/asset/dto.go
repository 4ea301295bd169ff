package asset

import (
	"time"

	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/shopspring/decimal"
)

// ScheduleMaintenanceRequest represents a request to record a service window
type ScheduleMaintenanceRequest struct {
	Type         string    `json:"type" binding:"required,oneof=Maintenance Repair"`
	RequestType  string    `json:"request_type" binding:"required,oneof=Preventive Corrective Emergency"`
	ServiceStart time.Time `json:"service_start" binding:"required"`
	ServiceEnd   time.Time `json:"service_end" binding:"required,gtefield=ServiceStart"`
	Provider     string    `json:"provider" binding:"required,max=200"`
	Notes        string    `json:"notes" binding:"max=2000"`
}

// DisposalRequest represents a request to retire an asset
type DisposalRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// DepreciationRequest represents a request to run one year of depreciation
type DepreciationRequest struct {
	Method             string           `json:"method" binding:"required"`
	SalvageValue       decimal.Decimal  `json:"salvage_value"`
	UsefulLife         int              `json:"useful_life" binding:"required,min=1"`
	TotalUnitsProduced *decimal.Decimal `json:"total_units_produced"`
	UnitsUsedThisYear  *decimal.Decimal `json:"units_used_this_year"`
}

func (r DepreciationRequest) toDomain() asset.DepreciationRequest {
	return asset.DepreciationRequest{
		Method:       asset.Method(r.Method),
		SalvageValue: r.SalvageValue,
		UsefulLife:   r.UsefulLife,
		Params: asset.Params{
			TotalUnitsProduced: r.TotalUnitsProduced,
			UnitsUsedThisYear:  r.UnitsUsedThisYear,
		},
	}
}

// AssignRequest represents a request to issue an asset to an employee
type AssignRequest struct {
	DepartmentID string     `json:"department_id" binding:"required"`
	EmployeeID   string     `json:"employee_id" binding:"required"`
	AssignedAt   *time.Time `json:"assigned_at"`
}

// ListFilter holds the query parameters for listing assets
type ListFilter struct {
	Status       string `form:"status"`
	Type         string `form:"type"`
	Assignment   string `form:"assignment"`
	DepartmentID string `form:"department_id"`
	ReferenceID  string `form:"reference_id"`
	Search       string `form:"search"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MaintenanceResponse represents one service window in API responses
type MaintenanceResponse struct {
	MaintenanceID string          `json:"maintenance_id"`
	Type          string          `json:"type"`
	RequestType   string          `json:"request_type"`
	RequestStatus string          `json:"request_status"`
	ServiceStart  time.Time       `json:"service_start"`
	ServiceEnd    time.Time       `json:"service_end"`
	Provider      string          `json:"provider"`
	Notes         string          `json:"notes"`
	Cost          decimal.Decimal `json:"cost"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// DepreciationResponse represents one depreciation entry in API responses
type DepreciationResponse struct {
	DepreciationID string          `json:"depreciation_id"`
	Method         string          `json:"method"`
	SalvageValue   decimal.Decimal `json:"salvage_value"`
	UsefulLife     int             `json:"useful_life"`
	Annual         decimal.Decimal `json:"annual_depreciation"`
	BookValue      decimal.Decimal `json:"book_value"`
	Percent        decimal.Decimal `json:"depreciation_percent"`
	Accumulated    decimal.Decimal `json:"accumulated_depreciation"`
	Params         asset.Params    `json:"params"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	AssetID                 string                 `json:"asset_id"`
	Name                    string                 `json:"name"`
	Type                    string                 `json:"type"`
	Subtype                 string                 `json:"subtype"`
	Status                  string                 `json:"status"`
	Assignment              asset.Assignment       `json:"assignment"`
	PurchaseCost            decimal.Decimal        `json:"purchase_cost"`
	PurchaseDate            time.Time              `json:"purchase_date"`
	VendorID                string                 `json:"vendor_id"`
	PurchaseTransactionID   string                 `json:"purchase_transaction_id"`
	ReferenceID             string                 `json:"reference_id"`
	BatchSuffix             string                 `json:"batch_suffix"`
	BookValue               decimal.Decimal        `json:"book_value"`
	AccumulatedDepreciation decimal.Decimal        `json:"accumulated_depreciation"`
	Maintenance             []MaintenanceResponse  `json:"maintenance_details"`
	Depreciation            []DepreciationResponse `json:"depreciation_details"`
	Disposal                *asset.Disposal        `json:"disposal_details,omitempty"`
	CreatedBy               string                 `json:"created_by"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

// ToAssetResponse converts a domain Asset to AssetResponse
func ToAssetResponse(a *asset.Asset) AssetResponse {
	resp := AssetResponse{
		AssetID:                 a.AssetID,
		Name:                    a.Name,
		Type:                    string(a.Type),
		Subtype:                 a.Subtype,
		Status:                  a.Status.String(),
		Assignment:              a.Assignment,
		PurchaseCost:            a.PurchaseCost,
		PurchaseDate:            a.PurchaseDate,
		VendorID:                a.VendorID,
		PurchaseTransactionID:   a.PurchaseTransactionID,
		ReferenceID:             a.ReferenceID,
		BatchSuffix:             a.BatchSuffix,
		BookValue:               a.BookValue(),
		AccumulatedDepreciation: a.AccumulatedDepreciation(),
		Maintenance:             make([]MaintenanceResponse, 0, len(a.Maintenance)),
		Depreciation:            ToDepreciationResponses(a.Depreciation),
		Disposal:                a.Disposal,
		CreatedBy:               a.CreatedBy,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
	for _, m := range a.Maintenance {
		resp.Maintenance = append(resp.Maintenance, MaintenanceResponse{
			MaintenanceID: m.MaintenanceID,
			Type:          string(m.Type),
			RequestType:   string(m.RequestType),
			RequestStatus: string(m.RequestStatus),
			ServiceStart:  m.ServiceStart,
			ServiceEnd:    m.ServiceEnd,
			Provider:      m.Provider,
			Notes:         m.Notes,
			Cost:          m.Cost,
			TransactionID: m.TransactionID,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return resp
}

// ToDepreciationResponse converts one entry
func ToDepreciationResponse(e asset.DepreciationEntry) DepreciationResponse {
	return DepreciationResponse{
		DepreciationID: e.DepreciationID,
		Method:         string(e.Method),
		SalvageValue:   e.SalvageValue,
		UsefulLife:     e.UsefulLife,
		Annual:         e.Annual,
		BookValue:      e.BookValue,
		Percent:        e.Percent,
		Accumulated:    e.Accumulated,
		Params:         e.Params,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToDepreciationResponses converts an asset's depreciation ledger
func ToDepreciationResponses(entries []asset.DepreciationEntry) []DepreciationResponse {
	out := make([]DepreciationResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToDepreciationResponse(e))
	}
	return out
}
