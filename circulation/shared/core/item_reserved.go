package core

import (
	"time"

	"github.com/google/uuid"
)

const ItemReservedEventType = "ItemReserved"

// ItemReserved records a patron's intent to borrow an item that has no copy on the shelf.
// OccurredAt is the reservation time.
type ItemReserved struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	ItemID        ItemIDString
	PatronID      PatronIDString
	OccurredAt    OccurredAtTS
}

func BuildItemReserved(reservationID, itemID, patronID uuid.UUID, occurredAt time.Time) ItemReserved {
	return ItemReserved{
		EventType:     ItemReservedEventType,
		ReservationID: reservationID.String(),
		ItemID:        itemID.String(),
		PatronID:      patronID.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ItemReserved) IsEventType() EventTypeString {
	return ItemReservedEventType
}

func (e ItemReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemReserved) IsErrorEvent() bool {
	return false
}
