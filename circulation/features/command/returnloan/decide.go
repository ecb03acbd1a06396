package returnloan

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonLoanNotFound       = "loan does not exist"
	failureReasonAlreadyReturned    = "loan was returned already"
	failureReasonReturnBeforeBorrow = "return time lies before the borrow time"
	failureReasonReturnInFuture     = "return time lies in the future"
)

// Decide
//
//	ERROR: NotFound for an unknown loan
//	ERROR: AlreadyReturned for a returned loan
//	ERROR: InvalidArgument if ReturnedAt lies before the borrow time or after OccurredAt
//	ABORT: OverRelease if the item already has all copies on the shelf
//	THEN: LoanReturned with the fine assessed at ReturnedAt
func Decide(history core.DomainEvents, command Command, settings core.Settings) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	subject := core.RejectionSubject{LoanID: command.LoanID.String()}
	reject := func(kind core.ErrorKind, reason string) core.DecisionResult {
		return core.Rejection(core.ReturningLoanFailedEventType, subject, kind, reason, command.OccurredAt)
	}

	loan, found := state.Loan(command.LoanID.String())
	if !found {
		return reject(core.KindNotFound, failureReasonLoanNotFound)
	}

	subject.ItemID = loan.ItemID
	subject.PatronID = loan.PatronID

	if !loan.IsOpen() {
		return reject(core.KindAlreadyReturned, failureReasonAlreadyReturned)
	}

	if command.ReturnedAt.Before(loan.BorrowedAt) {
		return reject(core.KindInvalidArgument, failureReasonReturnBeforeBorrow)
	}

	if command.ReturnedAt.After(command.OccurredAt) {
		return reject(core.KindInvalidArgument, failureReasonReturnInFuture)
	}

	item := state.Item(loan.ItemID)
	if err = item.ReleaseOneCopy(); err != nil {
		return core.RejectionOrAbort(core.ReturningLoanFailedEventType, subject, err, command.OccurredAt)
	}

	return core.SuccessDecision(
		core.BuildLoanReturned(
			command.LoanID,
			core.IDOf(loan.ItemID),
			core.IDOf(loan.PatronID),
			command.ReturnedAt,
			core.CalculateFine(loan.DueDate, command.ReturnedAt, settings.FinePerDay),
			command.OccurredAt,
		),
	)
}

// BuildLoanFilter selects the lifecycle events of one loan.
func BuildLoanFilter(loanID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanEventTypes()...).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID.String())).
		Finalize()
}

// BuildEventFilter selects the item's ledger, its loans included.
func BuildEventFilter(itemID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID)).
		Finalize()
}
