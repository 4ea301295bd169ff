package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/bizops/ledger/internal/application/scope"
	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// Purchase is a persisted purchase transaction of reference type Asset
type Purchase struct {
	TransactionID string
	ReferenceID   string
	VendorID      string
	Date          time.Time
	Amount        decimal.Decimal
	Name          string
	Type          asset.Type
	Subtype       string
	Quantity      int
	CreatedBy     string
}

// CheckPurchase reports whether assets may be created for p. It runs
// before any identifier is minted.
func CheckPurchase(ctx context.Context, repos asset.Repository, p Purchase) error {
	if p.Quantity < 1 {
		return shared.NewValidationError("Quantity must be at least 1")
	}
	if !p.Type.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid asset type: %s", p.Type))
	}
	if !p.Type.HasSubtype(p.Subtype) {
		return shared.NewValidationError(fmt.Sprintf("Subtype %q does not belong to asset type %s", p.Subtype, p.Type))
	}
	if p.ReferenceID == "" {
		return nil
	}
	linked, err := repos.ExistsByReference(ctx, p.ReferenceID)
	if err != nil {
		return err
	}
	if linked {
		return shared.NewDomainError(shared.CodeAssetAlreadyLinked, fmt.Sprintf("Assets already exist for reference %s", p.ReferenceID))
	}
	return nil
}

// CreateFromPurchase creates Quantity Active, unassigned assets for p inside
// the caller's transaction. Every asset gets its own AST- code; they share
// one batch suffix and split the purchase amount evenly.
func CreateFromPurchase(ctx context.Context, repos scope.Repositories, metrics *telemetry.LedgerMetrics, p Purchase) ([]*asset.Asset, error) {
	if err := CheckPurchase(ctx, repos.Assets(), p); err != nil {
		return nil, err
	}
	if p.ReferenceID == "" {
		return nil, shared.NewValidationError("Reference ID is required to create assets")
	}
	unitCost, err := asset.UnitCost(p.Amount, p.Quantity)
	if err != nil {
		return nil, err
	}

	batch, err := repos.Sequences().NextValue(ctx, sequence.PurchaseBatchCounter)
	if err != nil {
		return nil, err
	}
	metrics.RecordSequenceAllocation(ctx, sequence.PurchaseBatchCounter)
	suffix := fmt.Sprintf("%0*d", sequence.Width, batch)

	created := make([]*asset.Asset, 0, p.Quantity)
	for i := 0; i < p.Quantity; i++ {
		assetID, err := scope.NextCode(ctx, repos, metrics, sequence.Asset)
		if err != nil {
			return nil, err
		}
		a, err := asset.NewAsset(assetID, asset.Source{
			Name:                  p.Name,
			Type:                  p.Type,
			Subtype:               p.Subtype,
			UnitCost:              unitCost,
			PurchaseDate:          p.Date,
			VendorID:              p.VendorID,
			PurchaseTransactionID: p.TransactionID,
			ReferenceID:           p.ReferenceID,
			BatchSuffix:           suffix,
		}, p.CreatedBy)
		if err != nil {
			return nil, err
		}
		created = append(created, a)
	}
	if err := repos.Assets().SaveBatch(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}
