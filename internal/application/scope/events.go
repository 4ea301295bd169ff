package scope

import (
	"context"

	"github.com/bizops/ledger/internal/domain/asset"
	"github.com/bizops/ledger/internal/domain/sequence"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// NextCode mints the next code of kind through the transaction's allocator
// and counts the allocation
func NextCode(ctx context.Context, repos Repositories, metrics *telemetry.LedgerMetrics, kind sequence.Kind) (string, error) {
	code, err := sequence.NextCode(ctx, repos.Sequences(), kind)
	if err != nil {
		return "", err
	}
	metrics.RecordSequenceAllocation(ctx, kind.Counter)
	return code, nil
}

// Publish logs the pending domain events of aggregates and clears them.
// Call it only after the transaction that produced them has committed.
func Publish(ctx context.Context, metrics *telemetry.LedgerMetrics, aggregates ...shared.AggregateRoot) {
	log := logger.L(ctx)
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		for _, ev := range agg.GetDomainEvents() {
			if changed, ok := ev.(*asset.StatusChangedEvent); ok {
				metrics.RecordAssetTransition(ctx, changed.From.String(), changed.To.String())
			}
			log.Info("domain event",
				zap.String("event_type", ev.EventType()),
				zap.String("aggregate_type", ev.AggregateType()),
				zap.String("aggregate_id", ev.AggregateID()),
				zap.Time("occurred_at", ev.OccurredAt()),
			)
		}
		agg.ClearDomainEvents()
	}
}
