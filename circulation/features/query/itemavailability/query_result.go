package itemavailability

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

// ItemAvailability satisfies TotalCopies - AvailableCopies == OpenLoans + PendingWithdrawals.
type ItemAvailability struct {
	ItemID             core.ItemIDString
	Title              string
	Visible            bool
	TotalCopies        int
	AvailableCopies    int
	OpenLoans          int
	OpenReservations   int
	PendingWithdrawals int
}
