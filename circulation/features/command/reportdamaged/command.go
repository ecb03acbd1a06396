package reportdamaged

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "ReportItemDamaged"
)

// Command keeps the damage level as given, Decide validates it.
type Command struct {
	RecordID    uuid.UUID
	ItemID      uuid.UUID
	Details     string
	DamageLevel string
	Repairable  bool
	OccurredAt  core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	recordID, itemID uuid.UUID,
	details string,
	damageLevel string,
	repairable bool,
	occurredAt time.Time,
) Command {

	return Command{
		RecordID:    recordID,
		ItemID:      itemID,
		Details:     strings.TrimSpace(details),
		DamageLevel: damageLevel,
		Repairable:  repairable,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
