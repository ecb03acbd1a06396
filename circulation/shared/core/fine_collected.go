package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const FineCollectedEventType = "FineCollected"

// FineCollected overrides the fine recorded for a loan, e.g. after a negotiated or partial collection.
type FineCollected struct {
	EventType  EventTypeString
	LoanID     LoanIDString
	ItemID     ItemIDString
	PatronID   PatronIDString
	Amount     decimal.Decimal
	OccurredAt OccurredAtTS
}

func BuildFineCollected(loanID, itemID, patronID uuid.UUID, amount decimal.Decimal, occurredAt time.Time) FineCollected {
	return FineCollected{
		EventType:  FineCollectedEventType,
		LoanID:     loanID.String(),
		ItemID:     itemID.String(),
		PatronID:   patronID.String(),
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e FineCollected) IsEventType() EventTypeString {
	return FineCollectedEventType
}

func (e FineCollected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FineCollected) IsErrorEvent() bool {
	return false
}
