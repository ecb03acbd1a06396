package core

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	DefaultLoanPeriodDays = 14
	DefaultBorrowingLimit = 5
)

// Settings are the library-wide circulation parameters. They are read once per operation.
type Settings struct {
	LoanPeriodDays int
	FinePerDay     decimal.Decimal
	BorrowingLimit int
}

func DefaultSettings() Settings {
	return Settings{
		LoanPeriodDays: DefaultLoanPeriodDays,
		FinePerDay:     decimal.NewFromInt(1),
		BorrowingLimit: DefaultBorrowingLimit,
	}
}

// WithDefaults fills a zero loan period and borrowing limit with the defaults.
// The fine rate is kept as is, zero is a valid rate.
func (s Settings) WithDefaults() Settings {
	defaults := DefaultSettings()

	if s.LoanPeriodDays == 0 {
		s.LoanPeriodDays = defaults.LoanPeriodDays
	}

	if s.BorrowingLimit == 0 {
		s.BorrowingLimit = defaults.BorrowingLimit
	}

	return s
}

func (s Settings) Validate() error {
	var errs []error

	if s.LoanPeriodDays <= 0 {
		errs = append(errs, NewError(KindInvalidArgument, "loan period must be at least one day"))
	}

	if s.BorrowingLimit <= 0 {
		errs = append(errs, NewError(KindInvalidArgument, "borrowing limit must be at least one"))
	}

	if s.FinePerDay.IsNegative() {
		errs = append(errs, NewError(KindInvalidArgument, "fine per day must not be negative"))
	}

	return errors.Join(errs...)
}
