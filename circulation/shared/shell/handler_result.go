package shell

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

// HandlerResult is what every command handler returns next to its error. Outcome is one of
// StatusSuccess, StatusIdempotent or StatusError; the retry fields describe the execution.
// AppendedEvents are the events the last attempt appended, a recorded rejection included.
type HandlerResult struct {
	Outcome          string
	AppendedEvents   core.DomainEvents
	RetryAttempts    int
	TotalRetryDelay  time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusSuccess, retryMetrics)
}

func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusIdempotent, retryMetrics)
}

func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(StatusError, retryMetrics)
}

func newHandlerResult(outcome string, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Outcome:          outcome,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

func (r HandlerResult) IsIdempotent() bool {
	return r.Outcome == StatusIdempotent
}

// HandlerResultFor picks the outcome from the decision taken in the last attempt.
func HandlerResultFor(decision DecisionSummary, retryMetrics RetryMetrics, err error) HandlerResult {
	var result HandlerResult

	switch {
	case err != nil:
		result = NewErrorResult(retryMetrics)
	case decision.Idempotent:
		result = NewIdempotentResult(retryMetrics)
	default:
		result = NewSuccessResult(retryMetrics)
	}

	result.AppendedEvents = decision.AppendedEvents

	return result
}

// AppendedEvent returns the first appended event of type E.
func AppendedEvent[E core.DomainEvent](result HandlerResult) (E, bool) {
	for _, event := range result.AppendedEvents {
		if typed, ok := event.(E); ok {
			return typed, true
		}
	}

	var zero E

	return zero, false
}
