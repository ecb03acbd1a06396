package reportlost

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "ReportItemLost"
)

type Command struct {
	RecordID   uuid.UUID
	ItemID     uuid.UUID
	Details    string
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(recordID, itemID uuid.UUID, details string, occurredAt time.Time) Command {
	return Command{
		RecordID:   recordID,
		ItemID:     itemID,
		Details:    strings.TrimSpace(details),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
