package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// CalculateFine charges ratePerDay for every full day asOf lies past dueDate.
// Partial days are not charged; a return on or before the due date costs nothing.
func CalculateFine(dueDate, asOf time.Time, ratePerDay decimal.Decimal) decimal.Decimal {
	if !asOf.After(dueDate) {
		return decimal.Zero
	}

	fullDaysOverdue := int64(asOf.Sub(dueDate) / day)

	return ratePerDay.Mul(decimal.NewFromInt(fullDaysOverdue))
}

// DueDateFor adds the loan period in calendar days.
func DueDateFor(from time.Time, loanPeriodDays int) time.Time {
	return ToOccurredAt(from).AddDate(0, 0, loanPeriodDays)
}
