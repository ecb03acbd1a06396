package collectfine

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonLoanNotFound   = "loan does not exist"
	failureReasonNegativeAmount = "amount must not be negative"
)

// Decide
//
//	ERROR: InvalidArgument for a negative amount
//	ERROR: NotFound for an unknown loan
//	IDEMPOTENT: the same amount was collected already
//	THEN: FineCollected
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	subject := core.RejectionSubject{LoanID: command.LoanID.String()}
	reject := func(kind core.ErrorKind, reason string) core.DecisionResult {
		return core.Rejection(core.CollectingFineFailedEventType, subject, kind, reason, command.OccurredAt)
	}

	if command.Amount.IsNegative() {
		return reject(core.KindInvalidArgument, failureReasonNegativeAmount)
	}

	loan, found := state.Loan(command.LoanID.String())
	if !found {
		return reject(core.KindNotFound, failureReasonLoanNotFound)
	}

	if collectedBefore(history, command) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildFineCollected(
			command.LoanID,
			core.IDOf(loan.ItemID),
			core.IDOf(loan.PatronID),
			command.Amount,
			command.OccurredAt,
		),
	)
}

// collectedBefore is true if the last collection of the loan was for the same amount.
func collectedBefore(history core.DomainEvents, command Command) bool {
	for i := len(history) - 1; i >= 0; i-- {
		if collected, ok := history[i].(core.FineCollected); ok && collected.LoanID == command.LoanID.String() {
			return collected.Amount.Equal(command.Amount)
		}
	}

	return false
}

func BuildEventFilter(loanID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanEventTypes()...).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID.String())).
		Finalize()
}
