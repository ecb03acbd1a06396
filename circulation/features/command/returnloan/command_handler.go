package returnloan

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type CommandHandler struct {
	eventStore       shell.EventStore
	settingsProvider settings.Provider
	retryOptions     []shell.RetryOption
}

type Option func(*CommandHandler)

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

func NewCommandHandler(eventStore shell.EventStore, settingsProvider settings.Provider, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore:       eventStore,
		settingsProvider: settingsProvider,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision shell.DecisionSummary

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	return shell.HandlerResultFor(decision, retryMetrics, err), err
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (shell.DecisionSummary, error) {
	librarySettings, err := h.settingsProvider.GetSettings(ctx)
	if err != nil {
		return shell.DecisionSummary{}, err
	}

	filter, err := h.boundaryFor(ctx, command)
	if err != nil {
		return shell.DecisionSummary{}, err
	}

	return shell.ExecuteDecision(ctx, h.eventStore, filter, func(history core.DomainEvents) core.DecisionResult {
		return Decide(history, command, librarySettings)
	})
}

// boundaryFor returns the item boundary of the loan, or the loan boundary for an unknown loan,
// inside which Decide records the NotFound rejection. A loan never changes its item.
func (h CommandHandler) boundaryFor(ctx context.Context, command Command) (eventstore.Filter, error) {
	loanFilter := BuildLoanFilter(command.LoanID)

	history, _, err := shell.QueryHistory(ctx, h.eventStore, loanFilter)
	if err != nil {
		return eventstore.Filter{}, err
	}

	for _, event := range history {
		if issued, ok := event.(core.LoanIssued); ok {
			return BuildEventFilter(issued.ItemID), nil
		}
	}

	return loanFilter, nil
}
