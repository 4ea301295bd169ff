package asset

// Status represents the lifecycle status of an asset
type Status string

const (
	StatusActive            Status = "Active"
	StatusMaintenanceNeeded Status = "Maintenance Needed"
	StatusRepairNeeded      Status = "Repair Needed"
	StatusUnderMaintenance  Status = "Under Maintenance"
	StatusUnderRepair       Status = "Under Repair"
	StatusAwaitingDisposal  Status = "Awaiting Disposal"
	StatusDisposed          Status = "Disposed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusMaintenanceNeeded, StatusRepairNeeded,
		StatusUnderMaintenance, StatusUnderRepair,
		StatusAwaitingDisposal, StatusDisposed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusDisposed
}

// InDisposalBranch returns true once a disposal has been requested
func (s Status) InDisposalBranch() bool {
	return s == StatusAwaitingDisposal || s == StatusDisposed
}

// InMaintenanceBranch returns true while a service window is open
func (s Status) InMaintenanceBranch() bool {
	switch s {
	case StatusMaintenanceNeeded, StatusRepairNeeded, StatusUnderMaintenance, StatusUnderRepair:
		return true
	}
	return false
}

// AssignmentStatus tells whether an asset is issued to someone
type AssignmentStatus string

const (
	AssignmentUnassigned AssignmentStatus = "Unassigned"
	AssignmentAssigned   AssignmentStatus = "Assigned"
)

// IsValid checks if the assignment status is valid
func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentUnassigned || s == AssignmentAssigned
}
