package reservationsforitem

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project
//
//	GIVEN: the reservation events of the item
//	THEN: the open reservations, earliest first
//	EXCLUDES: canceled and fulfilled reservations
func Project(history core.DomainEvents, query Query) (Reservations, error) {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return Reservations{}, err
	}

	open := state.ReservationsForItem(query.ItemID.String())
	reservations := make([]ReservationInfo, 0, len(open))

	for _, reservation := range open {
		reservations = append(reservations, ReservationInfo{
			ReservationID: reservation.ReservationID,
			PatronID:      reservation.PatronID,
			ReservedAt:    reservation.ReservedAt,
		})
	}

	return Reservations{
		ItemID:       query.ItemID.String(),
		Reservations: reservations,
		Count:        len(reservations),
	}, nil
}

func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemReservedEventType,
			core.ReservationCanceledEventType,
			core.ReservationFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P("ItemID", query.ItemID.String())).
		Finalize()
}
