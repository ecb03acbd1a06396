package core

import (
	"time"
)

// Reservation is an open reservation. There is at most one per (item, patron).
type Reservation struct {
	ReservationID ReservationIDString
	ItemID        ItemIDString
	PatronID      PatronIDString
	ReservedAt    time.Time
}

type reservationKey struct {
	itemID   ItemIDString
	patronID PatronIDString
}
