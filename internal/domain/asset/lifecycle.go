package asset

import "time"

// Evaluate derives the status from the open service window at now and
// reports whether anything changed. There is no scheduler: status only
// moves when something reads or touches the asset.
//
//	now < start          -> Maintenance/Repair Needed
//	start <= now <= end  -> Under Maintenance/Repair
//	now > end            -> Active, window Completed
//
// Evaluating twice with the same now is a no-op the second time.
func (a *Asset) Evaluate(now time.Time) bool {
	if a.Status.InDisposalBranch() {
		return false
	}
	open := a.OpenMaintenance()
	if open == nil {
		if a.Status.InMaintenanceBranch() {
			a.setStatus(StatusActive, now)
			return true
		}
		return false
	}

	var (
		status    Status
		reqStatus RequestStatus
	)
	switch {
	case now.Before(open.ServiceStart):
		status, reqStatus = open.Type.neededStatus(), RequestStatusScheduled
	case !now.After(open.ServiceEnd):
		status, reqStatus = open.Type.underStatus(), RequestStatusInProgress
	default:
		status, reqStatus = StatusActive, RequestStatusCompleted
	}

	changed := open.RequestStatus != reqStatus || a.Status != status
	open.RequestStatus = reqStatus
	if changed {
		a.Touch(now)
	}
	a.setStatus(status, now)
	return changed
}
