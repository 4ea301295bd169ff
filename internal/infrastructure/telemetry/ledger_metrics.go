package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Outcome values for AttrOutcome
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// LedgerMetrics records ledger business activity. A nil *LedgerMetrics is
// valid and records nothing.
type LedgerMetrics struct {
	transactions        *Counter
	transactionAmount   *Histogram
	reconciliations     *Counter
	sequenceAllocations *Counter
	assetTransitions    *Counter
	depreciationEntries *Counter
	liabilityPayments   *Counter
}

// NewLedgerMetrics creates the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	var (
		m   LedgerMetrics
		err error
	)
	if m.transactions, err = NewCounter(meter, "ledger_transactions_total",
		"Transactions processed, by kind, reference type and outcome", "{transaction}"); err != nil {
		return nil, err
	}
	if m.transactionAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "ledger_transaction_amount",
		Description: "Amount of recorded transactions in local currency",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.reconciliations, err = NewCounter(meter, "ledger_reconciliations_total",
		"Reconciliation side effects applied, by kind and outcome", "{reconciliation}"); err != nil {
		return nil, err
	}
	if m.sequenceAllocations, err = NewCounter(meter, "ledger_sequence_allocations_total",
		"Sequence values handed out, by counter", "{value}"); err != nil {
		return nil, err
	}
	if m.assetTransitions, err = NewCounter(meter, "ledger_asset_status_transitions_total",
		"Asset lifecycle transitions, by source and target status", "{transition}"); err != nil {
		return nil, err
	}
	if m.depreciationEntries, err = NewCounter(meter, "ledger_depreciation_entries_total",
		"Depreciation entries appended, by method", "{entry}"); err != nil {
		return nil, err
	}
	if m.liabilityPayments, err = NewCounter(meter, "ledger_liability_payments_total",
		"Liability payments, by outcome", "{payment}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordTransaction counts a processed transaction. The amount is only
// recorded for successful ones.
func (m *LedgerMetrics) RecordTransaction(ctx context.Context, kind, referenceType, errorCode string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrKind.String(kind), AttrReferenceType.String(referenceType)}
	if errorCode != "" {
		m.transactions.Inc(ctx, append(attrs, AttrOutcome.String(OutcomeFailure), AttrErrorCode.String(errorCode))...)
		return
	}
	m.transactions.Inc(ctx, append(attrs, AttrOutcome.String(OutcomeSuccess))...)
	m.transactionAmount.Record(ctx, amount.InexactFloat64(), attrs...)
}

// RecordReconciliation counts a reconciliation attempt
func (m *LedgerMetrics) RecordReconciliation(ctx context.Context, kind, referenceType string, ok bool) {
	if m == nil {
		return
	}
	m.reconciliations.Inc(ctx, AttrKind.String(kind), AttrReferenceType.String(referenceType), outcome(ok))
}

// RecordSequenceAllocation counts one allocated value of counter
func (m *LedgerMetrics) RecordSequenceAllocation(ctx context.Context, counter string) {
	if m == nil {
		return
	}
	m.sequenceAllocations.Inc(ctx, AttrCounter.String(counter))
}

// RecordAssetTransition counts an asset status change
func (m *LedgerMetrics) RecordAssetTransition(ctx context.Context, from, to string) {
	if m == nil || from == to {
		return
	}
	m.assetTransitions.Inc(ctx, AttrFromStatus.String(from), AttrToStatus.String(to))
}

// RecordDepreciation counts an appended depreciation entry
func (m *LedgerMetrics) RecordDepreciation(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.depreciationEntries.Inc(ctx, AttrMethod.String(method))
}

// RecordLiabilityPayment counts a liability payment attempt
func (m *LedgerMetrics) RecordLiabilityPayment(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	m.liabilityPayments.Inc(ctx, outcome(ok))
}

func outcome(ok bool) attribute.KeyValue {
	if ok {
		return AttrOutcome.String(OutcomeSuccess)
	}
	return AttrOutcome.String(OutcomeFailure)
}
