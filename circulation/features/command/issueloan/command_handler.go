package issueloan

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
)

// CommandHandler runs Query -> Decide -> Append with retry on concurrency conflicts.
// Observability is added from outside, see package observable.
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

// Handle returns the appended LoanIssued (and ReservationFulfilled) in the result's AppendedEvents.
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

	return shell.ExecuteDecision(
		ctx,
		h.eventStore,
		BuildEventFilter(command.ItemID, command.PatronID),
		func(history core.DomainEvents) core.DecisionResult {
			return Decide(history, command, librarySettings)
		},
	)
}
