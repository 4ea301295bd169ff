package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAsset(t *testing.T, assetID, referenceID string) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(assetID, asset.Source{
		Name:                  "ThinkPad T14",
		Type:                  asset.TypeITEquipment,
		Subtype:               "Laptop",
		UnitCost:              decimal.NewFromInt(1200),
		PurchaseDate:          time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		VendorID:              "VEN-001",
		PurchaseTransactionID: "PUR_TXN-00001",
		ReferenceID:           referenceID,
	}, "tester")
	require.NoError(t, err)
	return a
}

func TestGormAssetRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAssetRepository(newTestDB(t))

	a := newTestAsset(t, "AST-00001", "REF-00001")
	require.NoError(t, repo.Save(ctx, a))

	found, err := repo.FindByAssetID(ctx, "AST-00001")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
	assert.Equal(t, "ThinkPad T14", found.Name)
	assert.Equal(t, asset.StatusActive, found.Status)
	assert.Equal(t, asset.AssignmentUnassigned, found.Assignment.Status)
	assert.True(t, found.PurchaseCost.Equal(decimal.NewFromInt(1200)))
	assert.Empty(t, found.Maintenance)
	assert.Empty(t, found.Depreciation)
	assert.Nil(t, found.Disposal)
}

func TestGormAssetRepository_FindMissing(t *testing.T) {
	repo := NewGormAssetRepository(newTestDB(t))

	_, err := repo.FindByAssetID(context.Background(), "AST-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByAssetIDForUpdate(context.Background(), "AST-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAssetRepository_SubRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAssetRepository(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	a := newTestAsset(t, "AST-00002", "REF-00002")
	require.NoError(t, repo.Save(ctx, a))

	loaded, err := repo.FindByAssetIDForUpdate(ctx, "AST-00002")
	require.NoError(t, err)

	require.NoError(t, loaded.ScheduleMaintenance("MAINT-00001", asset.MaintenanceRequest{
		Type:         asset.MaintenanceTypeRepair,
		RequestType:  asset.RequestTypeCorrective,
		ServiceStart: now.Add(24 * time.Hour),
		ServiceEnd:   now.Add(48 * time.Hour),
		Provider:     "FixIt Ltd",
	}, "tester", now))

	req := asset.DepreciationRequest{Method: asset.MethodStraightLine, SalvageValue: decimal.NewFromInt(200), UsefulLife: 5}
	_, err = loaded.AddDepreciation("DEP-00001", req, "tester", now)
	require.NoError(t, err)
	_, err = loaded.AddDepreciation("DEP-00002", req, "tester", now.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, loaded))

	found, err := repo.FindByAssetID(ctx, "AST-00002")
	require.NoError(t, err)
	assert.Equal(t, asset.StatusRepairNeeded, found.Status)

	require.Len(t, found.Maintenance, 1)
	assert.Equal(t, "MAINT-00001", found.Maintenance[0].MaintenanceID)
	assert.Equal(t, asset.RequestStatusScheduled, found.Maintenance[0].RequestStatus)
	assert.Equal(t, "FixIt Ltd", found.Maintenance[0].Provider)

	require.Len(t, found.Depreciation, 2)
	assert.Equal(t, "DEP-00001", found.Depreciation[0].DepreciationID)
	assert.Equal(t, "DEP-00002", found.Depreciation[1].DepreciationID)
	assert.Equal(t, "1000", found.Depreciation[0].BookValue.String())
	assert.Equal(t, "800", found.Depreciation[1].BookValue.String())
	assert.Equal(t, "400", found.AccumulatedDepreciation().String())

	// saving again must not duplicate child rows
	require.NoError(t, repo.Save(ctx, found))
	again, err := repo.FindByAssetID(ctx, "AST-00002")
	require.NoError(t, err)
	assert.Len(t, again.Maintenance, 1)
	assert.Len(t, again.Depreciation, 2)
}

func TestGormAssetRepository_CorruptDepreciationParams(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormAssetRepository(db)

	a := newTestAsset(t, "AST-00003", "REF-00003")
	_, err := a.AddDepreciation("DEP-00001", asset.DepreciationRequest{
		Method: asset.MethodStraightLine, SalvageValue: decimal.NewFromInt(200), UsefulLife: 5,
	}, "tester", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))

	require.NoError(t, db.Model(&models.AssetDepreciationModel{}).
		Where("depreciation_id = ?", "DEP-00001").
		Update("params", "{not json").Error)

	_, err = repo.FindByAssetID(ctx, "AST-00003")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEP-00001")
	assert.NotErrorIs(t, err, shared.ErrNotFound)

	_, _, err = repo.FindAll(ctx, asset.Filter{})
	assert.Error(t, err)
}

func TestGormAssetRepository_Disposal(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAssetRepository(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	a := newTestAsset(t, "AST-00003", "REF-00003")
	require.NoError(t, a.RequestDisposal("DISP-00001", "End of life", "tester", now))
	require.NoError(t, a.CompleteDisposal("SAL-00001", decimal.NewFromInt(300), now))
	require.NoError(t, repo.Save(ctx, a))

	found, err := repo.FindByAssetID(ctx, "AST-00003")
	require.NoError(t, err)
	assert.Equal(t, asset.StatusDisposed, found.Status)
	require.NotNil(t, found.Disposal)
	assert.Equal(t, "DISP-00001", found.Disposal.DisposalID)
	assert.Equal(t, "End of life", found.Disposal.Reason)
	assert.Equal(t, "SAL-00001", found.Disposal.SaleTransactionID)
	require.NotNil(t, found.Disposal.SaleAmount)
	assert.True(t, found.Disposal.SaleAmount.Equal(decimal.NewFromInt(300)))
}

func TestGormAssetRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAssetRepository(newTestDB(t))

	batch := make([]*asset.Asset, 0, 5)
	for i := 1; i <= 5; i++ {
		batch = append(batch, newTestAsset(t, fmt.Sprintf("AST-%05d", i), "REF-00010"))
	}
	require.NoError(t, batch[4].RequestDisposal("DISP-00001", "Broken", "tester", time.Now()))
	require.NoError(t, batch[3].Assign("DEPT-01", "EMP-01", time.Now()))
	require.NoError(t, repo.SaveBatch(ctx, batch))

	t.Run("pages in the requested order and reports the full total", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, asset.Filter{
			Filter: shared.Filter{Page: 2, PageSize: 2, OrderBy: "asset_id", OrderDir: "asc"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, items, 2)
		assert.Equal(t, "AST-00003", items[0].AssetID)
		assert.Equal(t, "AST-00004", items[1].AssetID)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := asset.StatusAwaitingDisposal
		items, total, err := repo.FindAll(ctx, asset.Filter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "AST-00005", items[0].AssetID)
	})

	t.Run("filters by department", func(t *testing.T) {
		items, total, err := repo.FindAll(ctx, asset.Filter{DepartmentID: "DEPT-01"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, asset.AssignmentAssigned, items[0].Assignment.Status)
	})

	t.Run("searches by code", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, asset.Filter{Filter: shared.Filter{Search: "AST-0000"}})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})
}

func TestGormAssetRepository_ExistsByReference(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAssetRepository(newTestDB(t))

	exists, err := repo.ExistsByReference(ctx, "REF-00042")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Save(ctx, newTestAsset(t, "AST-00042", "REF-00042")))

	exists, err = repo.ExistsByReference(ctx, "REF-00042")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormAssetRepository_SaveBatchEmpty(t *testing.T) {
	repo := NewGormAssetRepository(newTestDB(t))
	assert.NoError(t, repo.SaveBatch(context.Background(), nil))
}
