package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const LoanReturnedEventType = "LoanReturned"

// LoanReturned closes a loan and releases its copy. Fine is the amount assessed at
// ReturnedAt, zero when the copy came back in time.
type LoanReturned struct {
	EventType  EventTypeString
	LoanID     LoanIDString
	ItemID     ItemIDString
	PatronID   PatronIDString
	ReturnedAt time.Time
	Fine       decimal.Decimal
	OccurredAt OccurredAtTS
}

func BuildLoanReturned(
	loanID, itemID, patronID uuid.UUID,
	returnedAt time.Time,
	fine decimal.Decimal,
	occurredAt time.Time,
) LoanReturned {

	return LoanReturned{
		EventType:  LoanReturnedEventType,
		LoanID:     loanID.String(),
		ItemID:     itemID.String(),
		PatronID:   patronID.String(),
		ReturnedAt: ToOccurredAt(returnedAt),
		Fine:       fine,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanReturned) IsEventType() EventTypeString {
	return LoanReturnedEventType
}

func (e LoanReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanReturned) IsErrorEvent() bool {
	return false
}
