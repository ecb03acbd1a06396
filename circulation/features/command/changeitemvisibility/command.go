package changeitemvisibility

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "ChangeItemVisibility"
)

type Command struct {
	ItemID     uuid.UUID
	Visible    bool
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(itemID uuid.UUID, visible bool, occurredAt time.Time) Command {
	return Command{
		ItemID:     itemID,
		Visible:    visible,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
