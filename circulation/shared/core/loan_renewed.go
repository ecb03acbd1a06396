package core

import (
	"time"

	"github.com/google/uuid"
)

const LoanRenewedEventType = "LoanRenewed"

type LoanRenewed struct {
	EventType       EventTypeString
	LoanID          LoanIDString
	ItemID          ItemIDString
	PatronID        PatronIDString
	PreviousDueDate time.Time
	NewDueDate      time.Time
	OccurredAt      OccurredAtTS
}

func BuildLoanRenewed(
	loanID, itemID, patronID uuid.UUID,
	previousDueDate time.Time,
	newDueDate time.Time,
	occurredAt time.Time,
) LoanRenewed {

	return LoanRenewed{
		EventType:       LoanRenewedEventType,
		LoanID:          loanID.String(),
		ItemID:          itemID.String(),
		PatronID:        patronID.String(),
		PreviousDueDate: ToOccurredAt(previousDueDate),
		NewDueDate:      ToOccurredAt(newDueDate),
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

func (e LoanRenewed) IsEventType() EventTypeString {
	return LoanRenewedEventType
}

func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRenewed) IsErrorEvent() bool {
	return false
}
