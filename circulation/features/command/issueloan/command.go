package issueloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "IssueLoan"
)

// Command carries the LoanID to create, so retries and replays issue the same loan.
type Command struct {
	LoanID     uuid.UUID
	ItemID     uuid.UUID
	PatronID   uuid.UUID
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(loanID, itemID, patronID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		ItemID:     itemID,
		PatronID:   patronID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
