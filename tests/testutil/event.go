package testutil

import (
	"testing"

	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/stretchr/testify/require"
)

// EventTypes lists the pending domain event types of an aggregate in order.
func EventTypes(agg shared.AggregateRoot) []string {
	events := agg.GetDomainEvents()
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.EventType())
	}
	return types
}

// RequireEvent returns the first pending event of eventType, failing the
// test if there is none.
func RequireEvent[T shared.DomainEvent](t *testing.T, agg shared.AggregateRoot, eventType string) T {
	t.Helper()
	for _, e := range agg.GetDomainEvents() {
		if e.EventType() != eventType {
			continue
		}
		typed, ok := e.(T)
		require.True(t, ok, "event %s has type %T", eventType, e)
		return typed
	}
	require.Failf(t, "event not raised", "no %s event among %v", eventType, EventTypes(agg))
	var zero T
	return zero
}
