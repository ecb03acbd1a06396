package reserveitem

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonItemNotFound            = "item is not registered or hidden"
	failureReasonItemAvailable           = "a copy is available, borrow it instead"
	failureReasonDuplicateReservation    = "patron has reserved this item already"
	failureReasonAlreadyBorrowedByPatron = "patron has borrowed this item"
)

// Decide checks, in this order:
//
//	ERROR: NotFound if the item is not registered or hidden
//	ERROR: ItemAvailableNoReservationNeeded if a copy is on the shelf
//	ERROR: DuplicateReservation if the patron holds a reservation for the item
//	ERROR: AlreadyBorrowed if the patron has an open loan on the item
//	THEN: ItemReserved
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	itemID := command.ItemID.String()
	patronID := command.PatronID.String()

	subject := core.RejectionSubject{ItemID: itemID, PatronID: patronID}
	reject := func(kind core.ErrorKind, reason string) core.DecisionResult {
		return core.Rejection(core.ReservingItemFailedEventType, subject, kind, reason, command.OccurredAt)
	}

	item := state.Item(itemID)

	if !item.IsLendable() {
		return reject(core.KindNotFound, failureReasonItemNotFound)
	}

	if item.AvailableCopies > 0 {
		return reject(core.KindItemAvailableNoReservationNeeded, failureReasonItemAvailable)
	}

	if _, reserved := state.Reservation(itemID, patronID); reserved {
		return reject(core.KindDuplicateReservation, failureReasonDuplicateReservation)
	}

	if _, borrowed := state.OpenLoanOf(patronID, itemID); borrowed {
		return reject(core.KindAlreadyBorrowed, failureReasonAlreadyBorrowedByPatron)
	}

	return core.SuccessDecision(
		core.BuildItemReserved(command.ReservationID, command.ItemID, command.PatronID, command.OccurredAt),
	)
}

// BuildEventFilter selects the item's ledger together with its loans and reservations.
func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
		Finalize()
}
