package cancelreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "CancelReservation"
)

type Command struct {
	ItemID     uuid.UUID
	PatronID   uuid.UUID
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(itemID, patronID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ItemID:     itemID,
		PatronID:   patronID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
