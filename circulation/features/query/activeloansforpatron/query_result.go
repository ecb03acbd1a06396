package activeloansforpatron

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

type LoanInfo struct {
	LoanID       core.LoanIDString
	ItemID       core.ItemIDString
	BorrowedAt   time.Time
	DueDate      time.Time
	RenewalCount int
	Overdue      bool
}

type ActiveLoans struct {
	PatronID core.PatronIDString
	Loans    []LoanInfo
	Count    int
}
