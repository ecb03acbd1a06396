package cancelreservation

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonReservationNotFound = "patron has no reservation for this item"
)

// Decide
//
//	ERROR: NotFound if the patron holds no reservation for the item
//	THEN: ReservationCanceled
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	reservation, found := state.Reservation(command.ItemID.String(), command.PatronID.String())
	if !found {
		return core.Rejection(
			core.CancelingReservationFailedEventType,
			core.RejectionSubject{ItemID: command.ItemID.String(), PatronID: command.PatronID.String()},
			core.KindNotFound,
			failureReasonReservationNotFound,
			command.OccurredAt,
		)
	}

	return core.SuccessDecision(
		core.BuildReservationCanceled(
			core.IDOf(reservation.ReservationID),
			command.ItemID,
			command.PatronID,
			command.OccurredAt,
		),
	)
}

func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemReservedEventType,
			core.ReservationCanceledEventType,
			core.ReservationFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
		Finalize()
}
