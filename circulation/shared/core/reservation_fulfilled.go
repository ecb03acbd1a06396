package core

import (
	"time"

	"github.com/google/uuid"
)

const ReservationFulfilledEventType = "ReservationFulfilled"

// ReservationFulfilled is appended together with the LoanIssued that consumed the reservation.
type ReservationFulfilled struct {
	EventType     EventTypeString
	ReservationID ReservationIDString
	ItemID        ItemIDString
	PatronID      PatronIDString
	LoanID        LoanIDString
	OccurredAt    OccurredAtTS
}

func BuildReservationFulfilled(reservationID, itemID, patronID, loanID uuid.UUID, occurredAt time.Time) ReservationFulfilled {
	return ReservationFulfilled{
		EventType:     ReservationFulfilledEventType,
		ReservationID: reservationID.String(),
		ItemID:        itemID.String(),
		PatronID:      patronID.String(),
		LoanID:        loanID.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationFulfilled) IsEventType() EventTypeString {
	return ReservationFulfilledEventType
}

func (e ReservationFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationFulfilled) IsErrorEvent() bool {
	return false
}
