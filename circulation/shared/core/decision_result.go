package core

// DecisionResult is what a Decide function returns. Build it with the factory functions only.
type DecisionResult struct {
	Outcome string // "idempotent", "success", "error" or "aborted"
	Events  DomainEvents
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
	abortedOutcome    = "aborted"
)

// IdempotentDecision means the requested state is already in place, nothing gets appended.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

// SuccessDecision carries the events that are appended together, in one atomic batch.
func SuccessDecision(event DomainEvent, additionalEvents ...DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Events:  append(DomainEvents{event}, additionalEvents...),
	}
}

// ErrorDecision is a business rule violation: the rejection event is recorded and err returned to the caller.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Events:  DomainEvents{event},
		Err:     err,
	}
}

// AbortDecision is an internal consistency error: nothing is appended.
func AbortDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: abortedOutcome,
		Err:     err,
	}
}

func (r DecisionResult) HasEventsToAppend() bool {
	return len(r.Events) > 0
}

func (r DecisionResult) HasError() error {
	return r.Err
}

func (r DecisionResult) IsSuccess() bool {
	return r.Outcome == successOutcome
}

func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

func (r DecisionResult) IsAborted() bool {
	return r.Outcome == abortedOutcome
}
