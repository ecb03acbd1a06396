package core

import (
	"time"

	"github.com/google/uuid"
)

const ItemRegisteredEventType = "ItemRegistered"

// ItemRegistered is written when catalog management puts an item with its copies into circulation.
type ItemRegistered struct {
	EventType   EventTypeString
	ItemID      ItemIDString
	Title       string
	TotalCopies int
	Visible     bool
	OccurredAt  OccurredAtTS
}

func BuildItemRegistered(itemID uuid.UUID, title string, totalCopies int, visible bool, occurredAt time.Time) ItemRegistered {
	return ItemRegistered{
		EventType:   ItemRegisteredEventType,
		ItemID:      itemID.String(),
		Title:       title,
		TotalCopies: totalCopies,
		Visible:     visible,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e ItemRegistered) IsEventType() EventTypeString {
	return ItemRegisteredEventType
}

func (e ItemRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemRegistered) IsErrorEvent() bool {
	return false
}
