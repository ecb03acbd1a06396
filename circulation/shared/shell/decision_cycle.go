package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// DecisionSummary reports what one query-decide-append cycle did.
type DecisionSummary struct {
	Idempotent     bool
	AppendedEvents core.DomainEvents
}

type DecideFunc func(history core.DomainEvents) core.DecisionResult

// QueryHistory loads and maps the history inside the filter.
func QueryHistory(
	ctx context.Context,
	store QueriesEvents,
	filter eventstore.Filter,
) (core.DomainEvents, eventstore.MaxSequenceNumberUint, error) {

	storableEvents, maxSequenceNumber, err := store.Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, 0, err
	}

	return history, maxSequenceNumber, nil
}

// ExecuteDecision runs one cycle: query the history inside filter, decide, and append the
// decided events conditionally on the boundary being unchanged. A business rejection is
// appended and then returned as the error; an aborted decision appends nothing.
func ExecuteDecision(
	ctx context.Context,
	store EventStore,
	filter eventstore.Filter,
	decide DecideFunc,
) (DecisionSummary, error) {

	history, maxSequenceNumber, err := QueryHistory(ctx, store, filter)
	if err != nil {
		return DecisionSummary{}, err
	}

	result := decide(history)

	if result.IsAborted() {
		return DecisionSummary{}, result.HasError()
	}

	if !result.HasEventsToAppend() {
		return DecisionSummary{Idempotent: true}, nil
	}

	storableEvents, err := StorableEventsFrom(result.Events, uuid.New())
	if err != nil {
		return DecisionSummary{}, err
	}

	if err = store.Append(ctx, filter, maxSequenceNumber, storableEvents...); err != nil {
		return DecisionSummary{}, err
	}

	return DecisionSummary{AppendedEvents: result.Events}, result.HasError()
}
