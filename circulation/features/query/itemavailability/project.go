package itemavailability

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project fails with NotFound for an item that was never registered. Hidden items are reported.
func Project(history core.DomainEvents, query Query) (ItemAvailability, error) {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return ItemAvailability{}, err
	}

	itemID := query.ItemID.String()

	item := state.Item(itemID)
	if !item.Exists {
		return ItemAvailability{}, core.NewError(core.KindNotFound, "item "+itemID+" is not registered")
	}

	return ItemAvailability{
		ItemID:             itemID,
		Title:              item.Title,
		Visible:            item.Visible,
		TotalCopies:        item.TotalCopies,
		AvailableCopies:    item.AvailableCopies,
		OpenLoans:          len(state.OpenLoansOfItem(itemID)),
		OpenReservations:   len(state.ReservationsForItem(itemID)),
		PendingWithdrawals: state.PendingWithdrawals(itemID),
	}, nil
}

func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(eventstore.P("ItemID", query.ItemID.String())).
		Finalize()
}
