package asset

import (
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeAsset is the aggregate type name used in events
const AggregateTypeAsset = "Asset"

// Event type constants
const (
	EventTypeCreated              = "AssetCreated"
	EventTypeStatusChanged        = "AssetStatusChanged"
	EventTypeMaintenanceScheduled = "AssetMaintenanceScheduled"
	EventTypeDisposalRequested    = "AssetDisposalRequested"
	EventTypeDisposed             = "AssetDisposed"
	EventTypeDepreciationRecorded = "AssetDepreciationRecorded"
)

// CreatedEvent is raised when an asset is created from a purchase
type CreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseTransactionID string          `json:"purchase_transaction_id"`
	Cost                  decimal.Decimal `json:"cost"`
}

// NewCreatedEvent creates a new CreatedEvent
func NewCreatedEvent(a *Asset) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeCreated, AggregateTypeAsset, a.AssetID),
		PurchaseTransactionID: a.PurchaseTransactionID,
		Cost:                  a.PurchaseCost,
	}
}

// StatusChangedEvent is raised on every lifecycle transition
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewStatusChangedEvent creates a new StatusChangedEvent
func NewStatusChangedEvent(a *Asset, from Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatusChanged, AggregateTypeAsset, a.AssetID),
		From:            from,
		To:              a.Status,
	}
}

// MaintenanceScheduledEvent is raised when a service window is recorded
type MaintenanceScheduledEvent struct {
	shared.BaseDomainEvent
	MaintenanceID string `json:"maintenance_id"`
}

// NewMaintenanceScheduledEvent creates a new MaintenanceScheduledEvent
func NewMaintenanceScheduledEvent(a *Asset, maintenanceID string) *MaintenanceScheduledEvent {
	return &MaintenanceScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaintenanceScheduled, AggregateTypeAsset, a.AssetID),
		MaintenanceID:   maintenanceID,
	}
}

// DisposalRequestedEvent is raised when an asset enters Awaiting Disposal
type DisposalRequestedEvent struct {
	shared.BaseDomainEvent
	DisposalID string `json:"disposal_id"`
	Reason     string `json:"reason"`
}

// NewDisposalRequestedEvent creates a new DisposalRequestedEvent
func NewDisposalRequestedEvent(a *Asset) *DisposalRequestedEvent {
	return &DisposalRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisposalRequested, AggregateTypeAsset, a.AssetID),
		DisposalID:      a.Disposal.DisposalID,
		Reason:          a.Disposal.Reason,
	}
}

// DisposedEvent is raised when a sale completes the disposal
type DisposedEvent struct {
	shared.BaseDomainEvent
	SaleTransactionID string `json:"sale_transaction_id"`
}

// NewDisposedEvent creates a new DisposedEvent
func NewDisposedEvent(a *Asset) *DisposedEvent {
	return &DisposedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeDisposed, AggregateTypeAsset, a.AssetID),
		SaleTransactionID: a.Disposal.SaleTransactionID,
	}
}

// DepreciationRecordedEvent is raised when an entry is appended
type DepreciationRecordedEvent struct {
	shared.BaseDomainEvent
	DepreciationID string          `json:"depreciation_id"`
	Annual         decimal.Decimal `json:"annual_depreciation"`
	BookValue      decimal.Decimal `json:"book_value"`
}

// NewDepreciationRecordedEvent creates a new DepreciationRecordedEvent
func NewDepreciationRecordedEvent(a *Asset, e *DepreciationEntry) *DepreciationRecordedEvent {
	return &DepreciationRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDepreciationRecorded, AggregateTypeAsset, a.AssetID),
		DepreciationID:  e.DepreciationID,
		Annual:          e.Annual,
		BookValue:       e.BookValue,
	}
}
