package asset

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MaintenanceType distinguishes routine servicing from repairs
type MaintenanceType string

const (
	MaintenanceTypeMaintenance MaintenanceType = "Maintenance"
	MaintenanceTypeRepair      MaintenanceType = "Repair"
)

// IsValid checks if the maintenance type is valid
func (t MaintenanceType) IsValid() bool {
	return t == MaintenanceTypeMaintenance || t == MaintenanceTypeRepair
}

// neededStatus is the status an asset waits in before the window opens
func (t MaintenanceType) neededStatus() Status {
	if t == MaintenanceTypeRepair {
		return StatusRepairNeeded
	}
	return StatusMaintenanceNeeded
}

// underStatus is the status an asset holds while the window is open
func (t MaintenanceType) underStatus() Status {
	if t == MaintenanceTypeRepair {
		return StatusUnderRepair
	}
	return StatusUnderMaintenance
}

// RequestType is the urgency class of a maintenance request
type RequestType string

const (
	RequestTypePreventive RequestType = "Preventive"
	RequestTypeCorrective RequestType = "Corrective"
	RequestTypeEmergency  RequestType = "Emergency"
)

// IsValid checks if the request type is valid
func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypePreventive, RequestTypeCorrective, RequestTypeEmergency:
		return true
	}
	return false
}

// RequestStatus tracks a maintenance window
type RequestStatus string

const (
	RequestStatusScheduled  RequestStatus = "Scheduled"
	RequestStatusInProgress RequestStatus = "In Progress"
	RequestStatusCompleted  RequestStatus = "Completed"
)

// MaintenanceRecord is one service window on an asset
type MaintenanceRecord struct {
	MaintenanceID string          `json:"maintenance_id"`
	Type          MaintenanceType `json:"type"`
	RequestType   RequestType     `json:"request_type"`
	RequestStatus RequestStatus   `json:"request_status"`
	ServiceStart  time.Time       `json:"service_start"`
	ServiceEnd    time.Time       `json:"service_end"`
	Provider      string          `json:"provider"`
	Notes         string          `json:"notes"`
	Cost          decimal.Decimal `json:"cost"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// IsOpen returns true until the window has been completed
func (m *MaintenanceRecord) IsOpen() bool {
	return m.RequestStatus != RequestStatusCompleted
}

// IsSettled returns true once an internal transaction paid for the window
func (m *MaintenanceRecord) IsSettled() bool {
	return m.TransactionID != ""
}

// MaintenanceRequest is the input for scheduling a service window
type MaintenanceRequest struct {
	Type         MaintenanceType
	RequestType  RequestType
	ServiceStart time.Time
	ServiceEnd   time.Time
	Provider     string
	Notes        string
}

// Validate checks the request fields against now
func (r MaintenanceRequest) Validate(now time.Time) error {
	if !r.Type.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid maintenance type: %s", r.Type))
	}
	if !r.RequestType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid request type: %s", r.RequestType))
	}
	if r.ServiceStart.IsZero() || r.ServiceEnd.IsZero() {
		return shared.NewValidationError("Service start and end dates are required")
	}
	if r.ServiceEnd.Before(r.ServiceStart) {
		return shared.NewValidationError("Service end date cannot be before start date")
	}
	if r.ServiceEnd.Before(now) {
		return shared.NewValidationError("Service window has already ended")
	}
	if strings.TrimSpace(r.Provider) == "" {
		return shared.NewValidationError("Service provider is required")
	}
	return nil
}

// OpenMaintenance returns the window that has not completed yet, if any
func (a *Asset) OpenMaintenance() *MaintenanceRecord {
	for i := len(a.Maintenance) - 1; i >= 0; i-- {
		if a.Maintenance[i].IsOpen() {
			return &a.Maintenance[i]
		}
	}
	return nil
}

// FindMaintenance looks up a window by its code
func (a *Asset) FindMaintenance(maintenanceID string) *MaintenanceRecord {
	for i := range a.Maintenance {
		if a.Maintenance[i].MaintenanceID == maintenanceID {
			return &a.Maintenance[i]
		}
	}
	return nil
}

// CheckMaintenance reports whether req could be scheduled at now.
// Call Evaluate first so expired windows are closed.
func (a *Asset) CheckMaintenance(req MaintenanceRequest, now time.Time) error {
	if a.Status.InDisposalBranch() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot schedule maintenance for asset in %s status", a.Status))
	}
	if open := a.OpenMaintenance(); open != nil {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Asset already has an open maintenance window: %s", open.MaintenanceID))
	}
	return req.Validate(now)
}

// ScheduleMaintenance records a new service window and derives the status
func (a *Asset) ScheduleMaintenance(maintenanceID string, req MaintenanceRequest, by string, now time.Time) error {
	a.Evaluate(now)
	if err := a.CheckMaintenance(req, now); err != nil {
		return err
	}
	if maintenanceID == "" {
		return shared.NewValidationError("Maintenance ID cannot be empty")
	}
	a.Maintenance = append(a.Maintenance, MaintenanceRecord{
		MaintenanceID: maintenanceID,
		Type:          req.Type,
		RequestType:   req.RequestType,
		RequestStatus: RequestStatusScheduled,
		ServiceStart:  req.ServiceStart,
		ServiceEnd:    req.ServiceEnd,
		Provider:      strings.TrimSpace(req.Provider),
		Notes:         req.Notes,
		Cost:          decimal.Zero,
		CreatedAt:     now,
		CreatedBy:     by,
	})
	a.Touch(now)
	a.IncrementVersion()
	a.AddDomainEvent(NewMaintenanceScheduledEvent(a, maintenanceID))
	a.Evaluate(now)
	return nil
}

// CheckMaintenancePayment reports whether an internal transaction of kind
// may pay for the given window. The asset must still be waiting for or
// undergoing that kind of service; a window that has completed can no
// longer be paid for.
func (a *Asset) CheckMaintenancePayment(maintenanceID string, kind MaintenanceType) error {
	if a.Status != kind.neededStatus() && a.Status != kind.underStatus() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Asset %s is not eligible for maintenance payments in %s status", a.AssetID, a.Status))
	}
	rec := a.FindMaintenance(maintenanceID)
	if rec == nil {
		return shared.NewNotFoundError(fmt.Sprintf("Maintenance record %s", maintenanceID))
	}
	if rec.Type != kind {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Maintenance record %s is a %s, not a %s", maintenanceID, rec.Type, kind))
	}
	if rec.IsSettled() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Maintenance record %s is already paid by %s", maintenanceID, rec.TransactionID))
	}
	return nil
}

// RecordMaintenanceCost attaches the paying transaction and its amount.
// Recording the same transaction twice is a no-op.
func (a *Asset) RecordMaintenanceCost(maintenanceID, transactionID string, cost decimal.Decimal) error {
	rec := a.FindMaintenance(maintenanceID)
	if rec == nil {
		return shared.NewNotFoundError(fmt.Sprintf("Maintenance record %s", maintenanceID))
	}
	if rec.TransactionID == transactionID {
		return nil
	}
	if err := a.CheckMaintenancePayment(maintenanceID, rec.Type); err != nil {
		return err
	}
	rec.Cost = valueobject.Round(cost)
	rec.TransactionID = transactionID
	a.Touch(time.Now())
	a.IncrementVersion()
	return nil
}
