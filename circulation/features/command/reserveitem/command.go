package reserveitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "ReserveItem"
)

type Command struct {
	ReservationID uuid.UUID
	ItemID        uuid.UUID
	PatronID      uuid.UUID
	OccurredAt    core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(reservationID, itemID, patronID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		ItemID:        itemID,
		PatronID:      patronID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
