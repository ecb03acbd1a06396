package updatelostdamagedstatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "UpdateLostDamagedStatus"
)

// Command keeps the new status as given, Decide validates it.
type Command struct {
	RecordID   uuid.UUID
	NewStatus  string
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(recordID uuid.UUID, newStatus string, occurredAt time.Time) Command {
	return Command{
		RecordID:   recordID,
		NewStatus:  newStatus,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
