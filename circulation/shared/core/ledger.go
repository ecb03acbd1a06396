package core

import (
	"fmt"
)

// ItemLedger is the availability account of one item. It keeps 0 <= AvailableCopies <= TotalCopies;
// every change goes through the methods below.
type ItemLedger struct {
	ItemID          ItemIDString
	Title           string
	Exists          bool
	Visible         bool
	TotalCopies     int
	AvailableCopies int
}

// IsLendable is true for registered items that are visible to patrons.
func (l ItemLedger) IsLendable() bool {
	return l.Exists && l.Visible
}

// ReserveOneCopy takes one copy off the shelf.
func (l *ItemLedger) ReserveOneCopy() error {
	if !l.Exists {
		return NewError(KindNotFound, "item "+l.ItemID+" does not exist")
	}

	if l.AvailableCopies <= 0 {
		return NewError(KindOutOfStock, "no copy of item "+l.ItemID+" is available")
	}

	l.AvailableCopies--

	return nil
}

// ReleaseOneCopy puts one copy back on the shelf.
func (l *ItemLedger) ReleaseOneCopy() error {
	if l.AvailableCopies >= l.TotalCopies {
		return NewError(
			KindOverRelease,
			fmt.Sprintf("item %s already has all %d copies available", l.ItemID, l.TotalCopies),
		)
	}

	l.AvailableCopies++

	return nil
}

// AdjustCapacity changes both counts at once, e.g. when a copy is written off.
func (l *ItemLedger) AdjustCapacity(deltaTotal, deltaAvailable int) error {
	total := l.TotalCopies + deltaTotal
	available := l.AvailableCopies + deltaAvailable

	if available < 0 || available > total {
		return NewError(
			KindInvariantViolation,
			fmt.Sprintf("item %s would end up with %d of %d copies available", l.ItemID, available, total),
		)
	}

	l.TotalCopies = total
	l.AvailableCopies = available

	return nil
}
