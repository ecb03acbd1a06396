package core

import (
	"time"

	"github.com/google/uuid"
)

const ReservationCanceledEventType = "ReservationCanceled"

type ReservationCanceled struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	ItemID        ItemIDString
	PatronID      PatronIDString
	OccurredAt    OccurredAtTS
}

func BuildReservationCanceled(reservationID, itemID, patronID uuid.UUID, occurredAt time.Time) ReservationCanceled {
	return ReservationCanceled{
		EventType:     ReservationCanceledEventType,
		ReservationID: reservationID.String(),
		ItemID:        itemID.String(),
		PatronID:      patronID.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationCanceled) IsEventType() EventTypeString {
	return ReservationCanceledEventType
}

func (e ReservationCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationCanceled) IsErrorEvent() bool {
	return false
}
