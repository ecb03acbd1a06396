package core

import (
	"time"

	"github.com/google/uuid"
)

const ItemVisibilityChangedEventType = "ItemVisibilityChanged"

// ItemVisibilityChanged hides an item from (or shows it to) new loans and reservations.
// Open loans and reservations are not affected.
type ItemVisibilityChanged struct {
	EventType  EventTypeString
	ItemID     ItemIDString
	Visible    bool
	OccurredAt OccurredAtTS
}

func BuildItemVisibilityChanged(itemID uuid.UUID, visible bool, occurredAt time.Time) ItemVisibilityChanged {
	return ItemVisibilityChanged{
		EventType:  ItemVisibilityChangedEventType,
		ItemID:     itemID.String(),
		Visible:    visible,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e ItemVisibilityChanged) IsEventType() EventTypeString {
	return ItemVisibilityChangedEventType
}

func (e ItemVisibilityChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemVisibilityChanged) IsErrorEvent() bool {
	return false
}
