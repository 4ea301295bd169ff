package asset

import (
	"errors"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 6, 12, 18, 0, 0, 0, time.UTC)
)

func repairRequest() MaintenanceRequest {
	return MaintenanceRequest{
		Type:         MaintenanceTypeRepair,
		RequestType:  RequestTypeCorrective,
		ServiceStart: windowStart,
		ServiceEnd:   windowEnd,
		Provider:     "Acme Services",
	}
}

func TestScheduleMaintenance_FutureWindow(t *testing.T) {
	a := newTestAsset(t)
	now := windowStart.Add(-48 * time.Hour)

	require.NoError(t, a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", now))
	assert.Equal(t, StatusRepairNeeded, a.Status)
	require.Len(t, a.Maintenance, 1)
	assert.Equal(t, RequestStatusScheduled, a.Maintenance[0].RequestStatus)
	assert.Equal(t, "user-1", a.Maintenance[0].CreatedBy)
}

func TestScheduleMaintenance_Rejections(t *testing.T) {
	now := windowStart.Add(-time.Hour)

	t.Run("open window", func(t *testing.T) {
		a := newTestAsset(t)
		require.NoError(t, a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", now))
		err := a.ScheduleMaintenance("MAINT-00002", repairRequest(), "user-1", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MAINT-00001")
		assert.Len(t, a.Maintenance, 1)
	})

	t.Run("disposal branch", func(t *testing.T) {
		a := newTestAsset(t)
		require.NoError(t, a.RequestDisposal("DISP-00001", "end of life", "user-1", now))
		err := a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", now)
		require.Error(t, err)
		assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	})

	t.Run("end before start", func(t *testing.T) {
		a := newTestAsset(t)
		req := repairRequest()
		req.ServiceEnd = req.ServiceStart.Add(-time.Hour)
		err := a.ScheduleMaintenance("MAINT-00001", req, "user-1", now)
		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	})

	t.Run("window already over", func(t *testing.T) {
		a := newTestAsset(t)
		err := a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", windowEnd.Add(time.Hour))
		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	})

	t.Run("next window allowed after completion", func(t *testing.T) {
		a := newTestAsset(t)
		require.NoError(t, a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", now))
		later := windowEnd.Add(24 * time.Hour)
		req := repairRequest()
		req.Type = MaintenanceTypeMaintenance
		req.ServiceStart = later.Add(24 * time.Hour)
		req.ServiceEnd = later.Add(48 * time.Hour)
		require.NoError(t, a.ScheduleMaintenance("MAINT-00002", req, "user-1", later))
		assert.Equal(t, RequestStatusCompleted, a.Maintenance[0].RequestStatus)
		assert.Equal(t, StatusMaintenanceNeeded, a.Status)
	})
}

func TestEvaluate_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantStatus Status
		wantReq    RequestStatus
	}{
		{"before start", windowStart.Add(-time.Minute), StatusRepairNeeded, RequestStatusScheduled},
		{"at start inclusive", windowStart, StatusUnderRepair, RequestStatusInProgress},
		{"inside window", windowStart.Add(time.Hour), StatusUnderRepair, RequestStatusInProgress},
		{"at end inclusive", windowEnd, StatusUnderRepair, RequestStatusInProgress},
		{"after end", windowEnd.Add(time.Second), StatusActive, RequestStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAsset(t)
			require.NoError(t, a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", windowStart.Add(-24*time.Hour)))

			a.Evaluate(tt.now)
			assert.Equal(t, tt.wantStatus, a.Status)
			assert.Equal(t, tt.wantReq, a.Maintenance[0].RequestStatus)

			version := a.Version
			assert.False(t, a.Evaluate(tt.now), "second evaluation must be a no-op")
			assert.Equal(t, tt.wantStatus, a.Status)
			assert.Equal(t, version, a.Version)
		})
	}
}

func TestEvaluate_ZeroLengthWindow(t *testing.T) {
	a := newTestAsset(t)
	req := repairRequest()
	req.Type = MaintenanceTypeMaintenance
	req.ServiceEnd = req.ServiceStart

	require.NoError(t, a.ScheduleMaintenance("MAINT-00001", req, "user-1", windowStart))
	assert.Equal(t, StatusUnderMaintenance, a.Status)

	assert.True(t, a.Evaluate(windowStart.Add(time.Nanosecond)))
	assert.Equal(t, StatusActive, a.Status)
}

func TestEvaluate_IgnoresDisposalBranch(t *testing.T) {
	a := newTestAsset(t)
	require.NoError(t, a.RequestDisposal("DISP-00001", "damaged", "user-1", windowStart))
	assert.False(t, a.Evaluate(windowEnd))
	assert.Equal(t, StatusAwaitingDisposal, a.Status)
}

func TestMaintenancePayment(t *testing.T) {
	a := newTestAsset(t)
	require.NoError(t, a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", windowStart.Add(-time.Hour)))

	assert.NoError(t, a.CheckMaintenancePayment("MAINT-00001", MaintenanceTypeRepair))
	assert.Error(t, a.CheckMaintenancePayment("MAINT-00001", MaintenanceTypeMaintenance))
	assert.True(t, shared.IsNotFound(a.CheckMaintenancePayment("MAINT-00099", MaintenanceTypeRepair)))

	require.NoError(t, a.RecordMaintenanceCost("MAINT-00001", "INT_TXN-00003", decimal.NewFromFloat(4500.456)))
	assert.Equal(t, "4500.46", a.Maintenance[0].Cost.StringFixed(2))
	assert.Equal(t, "INT_TXN-00003", a.Maintenance[0].TransactionID)

	require.NoError(t, a.RecordMaintenanceCost("MAINT-00001", "INT_TXN-00003", decimal.NewFromInt(1)))
	assert.Equal(t, "4500.46", a.Maintenance[0].Cost.StringFixed(2))

	err := a.CheckMaintenancePayment("MAINT-00001", MaintenanceTypeRepair)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestMaintenancePayment_NotEligible(t *testing.T) {
	t.Run("window completed", func(t *testing.T) {
		a := newTestAsset(t)
		require.NoError(t, a.ScheduleMaintenance("MAINT-00001", repairRequest(), "user-1", windowStart.Add(-time.Hour)))
		require.True(t, a.Evaluate(windowEnd.Add(time.Hour)))
		require.Equal(t, StatusActive, a.Status)

		err := a.CheckMaintenancePayment("MAINT-00001", MaintenanceTypeRepair)
		assert.Equal(t, shared.CodeInvalidState, errorCode(err))
		assert.Contains(t, err.Error(), "Active")
		assert.Error(t, a.RecordMaintenanceCost("MAINT-00001", "INT_TXN-00004", decimal.NewFromInt(100)))
		assert.Empty(t, a.Maintenance[0].TransactionID)
	})

	t.Run("awaiting disposal", func(t *testing.T) {
		a := newTestAsset(t)
		require.NoError(t, a.RequestDisposal("DISP-00001", "beyond repair", "user-1", windowStart))

		err := a.CheckMaintenancePayment("MAINT-00001", MaintenanceTypeRepair)
		assert.Equal(t, shared.CodeInvalidState, errorCode(err))
	})
}

func errorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
