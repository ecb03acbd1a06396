package core

import (
	"time"

	"github.com/google/uuid"
)

const LoanIssuedEventType = "LoanIssued"

// LoanIssued checks one copy of the item out to the patron. OccurredAt is the borrow time.
type LoanIssued struct {
	EventType  EventTypeString
	LoanID     LoanIDString
	ItemID     ItemIDString
	PatronID   PatronIDString
	DueDate    time.Time
	OccurredAt OccurredAtTS
}

func BuildLoanIssued(loanID, itemID, patronID uuid.UUID, dueDate time.Time, occurredAt time.Time) LoanIssued {
	return LoanIssued{
		EventType:  LoanIssuedEventType,
		LoanID:     loanID.String(),
		ItemID:     itemID.String(),
		PatronID:   patronID.String(),
		DueDate:    ToOccurredAt(dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanIssued) IsEventType() EventTypeString {
	return LoanIssuedEventType
}

func (e LoanIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanIssued) IsErrorEvent() bool {
	return false
}
