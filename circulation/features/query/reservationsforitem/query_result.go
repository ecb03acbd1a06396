package reservationsforitem

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

type ReservationInfo struct {
	ReservationID core.ReservationIDString
	PatronID      core.PatronIDString
	ReservedAt    time.Time
}

type Reservations struct {
	ItemID       core.ItemIDString
	Reservations []ReservationInfo
	Count        int
}
