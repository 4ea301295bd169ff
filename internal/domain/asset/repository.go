package asset

import (
	"context"

	"github.com/bizops/ledger/internal/domain/shared"
)

// Filter defines filtering options for asset queries
type Filter struct {
	shared.Filter
	Status       *Status
	Type         *Type
	Assignment   *AssignmentStatus
	DepartmentID string
	ReferenceID  string
}

// Repository defines the interface for asset persistence
type Repository interface {
	// FindByAssetID finds an asset by its display code
	FindByAssetID(ctx context.Context, assetID string) (*Asset, error)

	// FindByAssetIDForUpdate finds an asset and locks its row until the
	// surrounding transaction ends
	FindByAssetIDForUpdate(ctx context.Context, assetID string) (*Asset, error)

	// FindAll finds assets matching the filter
	FindAll(ctx context.Context, filter Filter) ([]Asset, int64, error)

	// ExistsByReference checks whether any asset was created for a purchase reference
	ExistsByReference(ctx context.Context, referenceID string) (bool, error)

	// Save creates or updates an asset with its sub-records
	Save(ctx context.Context, a *Asset) error

	// SaveBatch creates several assets at once
	SaveBatch(ctx context.Context, assets []*Asset) error
}
