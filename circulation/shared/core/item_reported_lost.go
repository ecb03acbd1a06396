package core

import (
	"time"

	"github.com/google/uuid"
)

const ItemReportedLostEventType = "ItemReportedLost"

// ItemReportedLost opens a LOST record. The copy is taken out of the lending pool at once.
type ItemReportedLost struct {
	EventType     EventTypeString
	RecordID      RecordIDString
	ItemID        ItemIDString
	Details       string
	CopyWithdrawn bool
	OccurredAt    OccurredAtTS
}

func BuildItemReportedLost(recordID, itemID uuid.UUID, details string, occurredAt time.Time) ItemReportedLost {
	return ItemReportedLost{
		EventType:     ItemReportedLostEventType,
		RecordID:      recordID.String(),
		ItemID:        itemID.String(),
		Details:       details,
		CopyWithdrawn: true,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ItemReportedLost) IsEventType() EventTypeString {
	return ItemReportedLostEventType
}

func (e ItemReportedLost) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemReportedLost) IsErrorEvent() bool {
	return false
}
