package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanState string

const (
	LoanStateActive   LoanState = "ACTIVE"
	LoanStateReturned LoanState = "RETURNED"
)

// Loan is the projected state of one loan. FinePaid is null until a positive fine was assessed
// on return or an amount was collected.
type Loan struct {
	LoanID       LoanIDString
	ItemID       ItemIDString
	PatronID     PatronIDString
	State        LoanState
	BorrowedAt   time.Time
	DueDate      time.Time
	ReturnedAt   *time.Time
	FinePaid     decimal.NullDecimal
	RenewalCount int
}

func (l Loan) IsOpen() bool {
	return l.State == LoanStateActive
}

// IsOverdueAt is true for an open loan whose due date lies before asOf.
func (l Loan) IsOverdueAt(asOf time.Time) bool {
	return l.IsOpen() && asOf.After(l.DueDate)
}

// FineAt is the fine as of asOf: accruing for open loans, fixed for returned ones.
func (l Loan) FineAt(asOf time.Time, ratePerDay decimal.Decimal) decimal.Decimal {
	if !l.IsOpen() {
		if l.FinePaid.Valid {
			return l.FinePaid.Decimal
		}

		return decimal.Zero
	}

	return CalculateFine(l.DueDate, asOf, ratePerDay)
}

func nullableFine(fine decimal.Decimal) decimal.NullDecimal {
	if fine.IsPositive() {
		return decimal.NewNullDecimal(fine)
	}

	return decimal.NullDecimal{}
}
