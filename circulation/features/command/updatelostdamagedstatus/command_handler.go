package updatelostdamagedstatus

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
}

type Option func(*CommandHandler)

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{eventStore: eventStore}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision shell.DecisionSummary

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		filter, execErr := h.boundaryFor(retryCtx, command)
		if execErr != nil {
			return execErr
		}

		decision, execErr = shell.ExecuteDecision(retryCtx, h.eventStore, filter, func(history core.DomainEvents) core.DecisionResult {
			return Decide(history, command)
		})

		return execErr
	}, h.retryOptions...)

	return shell.HandlerResultFor(decision, retryMetrics, err), err
}

// boundaryFor returns the boundary of the record's item, or the record boundary for an unknown
// record. A record never changes its item.
func (h CommandHandler) boundaryFor(ctx context.Context, command Command) (eventstore.Filter, error) {
	recordFilter := BuildRecordFilter(command.RecordID)

	history, _, err := shell.QueryHistory(ctx, h.eventStore, recordFilter)
	if err != nil {
		return eventstore.Filter{}, err
	}

	for _, event := range history {
		switch reported := event.(type) {
		case core.ItemReportedLost:
			return BuildEventFilter(reported.ItemID), nil
		case core.ItemReportedDamaged:
			return BuildEventFilter(reported.ItemID), nil
		}
	}

	return recordFilter, nil
}
