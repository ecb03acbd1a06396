package renewloan

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonLoanNotFound    = "loan does not exist"
	failureReasonAlreadyReturned = "loan was returned already"
	failureReasonOverdue         = "loan is overdue"
)

// Decide
//
//	ERROR: NotFound for an unknown loan
//	ERROR: AlreadyReturned for a returned loan
//	ERROR: RenewalBlocked if the loan is overdue at OccurredAt
//	THEN: LoanRenewed with the due date moved by LoanPeriodDays
func Decide(history core.DomainEvents, command Command, settings core.Settings) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	subject := core.RejectionSubject{LoanID: command.LoanID.String()}
	reject := func(kind core.ErrorKind, reason string) core.DecisionResult {
		return core.Rejection(core.RenewingLoanFailedEventType, subject, kind, reason, command.OccurredAt)
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

	if loan.IsOverdueAt(command.OccurredAt) {
		return reject(core.KindRenewalBlocked, failureReasonOverdue)
	}

	return core.SuccessDecision(
		core.BuildLoanRenewed(
			command.LoanID,
			core.IDOf(loan.ItemID),
			core.IDOf(loan.PatronID),
			loan.DueDate,
			core.DueDateFor(loan.DueDate, settings.LoanPeriodDays),
			command.OccurredAt,
		),
	)
}

func BuildEventFilter(loanID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanEventTypes()...).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID.String())).
		Finalize()
}
