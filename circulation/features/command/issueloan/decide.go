package issueloan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonItemNotFound    = "item is not registered or hidden"
	failureReasonOutOfStock      = "no copy is available"
	failureReasonAlreadyBorrowed = "patron already borrowed this item"
)

// Decide checks, in this order:
//
//	ERROR: NotFound if the item is not registered or hidden
//	ERROR: OutOfStock if no copy is available
//	ERROR: BorrowLimitExceeded if the patron has BorrowingLimit open loans
//	ERROR: AlreadyBorrowed if the patron has an open loan on the item
//	THEN: LoanIssued due after LoanPeriodDays, plus ReservationFulfilled if the patron
//	      had reserved the item
func Decide(history core.DomainEvents, command Command, settings core.Settings) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	subject := core.RejectionSubject{
		ItemID:   command.ItemID.String(),
		PatronID: command.PatronID.String(),
		LoanID:   command.LoanID.String(),
	}
	reject := func(kind core.ErrorKind, reason string) core.DecisionResult {
		return core.Rejection(core.IssuingLoanFailedEventType, subject, kind, reason, command.OccurredAt)
	}

	item := state.Item(command.ItemID.String())

	if !item.IsLendable() {
		return reject(core.KindNotFound, failureReasonItemNotFound)
	}

	if item.AvailableCopies <= 0 {
		return reject(core.KindOutOfStock, failureReasonOutOfStock)
	}

	if openLoans := len(state.OpenLoansOfPatron(command.PatronID.String())); openLoans >= settings.BorrowingLimit {
		return reject(
			core.KindBorrowLimitExceeded,
			fmt.Sprintf("patron has %d open loans, the limit is %d", openLoans, settings.BorrowingLimit),
		)
	}

	if _, borrowed := state.OpenLoanOf(command.PatronID.String(), command.ItemID.String()); borrowed {
		return reject(core.KindAlreadyBorrowed, failureReasonAlreadyBorrowed)
	}

	if err = item.ReserveOneCopy(); err != nil {
		return core.RejectionOrAbort(core.IssuingLoanFailedEventType, subject, err, command.OccurredAt)
	}

	loanIssued := core.BuildLoanIssued(
		command.LoanID,
		command.ItemID,
		command.PatronID,
		core.DueDateFor(command.OccurredAt, settings.LoanPeriodDays),
		command.OccurredAt,
	)

	reservation, reserved := state.Reservation(command.ItemID.String(), command.PatronID.String())
	if !reserved {
		return core.SuccessDecision(loanIssued)
	}

	return core.SuccessDecision(
		loanIssued,
		core.BuildReservationFulfilled(
			core.IDOf(reservation.ReservationID),
			command.ItemID,
			command.PatronID,
			command.LoanID,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter selects everything that happened to the item or the patron.
func BuildEventFilter(itemID, patronID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(
			eventstore.P("ItemID", itemID.String()),
			eventstore.P("PatronID", patronID.String()),
		).
		Finalize()
}
