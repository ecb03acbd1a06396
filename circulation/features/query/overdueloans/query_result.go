package overdueloans

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

type OverdueLoan struct {
	LoanID      core.LoanIDString
	ItemID      core.ItemIDString
	PatronID    core.PatronIDString
	DueDate     time.Time
	DaysOverdue int
	AccruedFine decimal.Decimal
}

type OverdueLoans struct {
	AsOf  time.Time
	Loans []OverdueLoan
	Count int
}
