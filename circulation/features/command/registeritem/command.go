package registeritem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "RegisterItem"
)

type Command struct {
	ItemID      uuid.UUID
	Title       string
	TotalCopies int
	Visible     bool
	OccurredAt  core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(itemID uuid.UUID, title string, totalCopies int, visible bool, occurredAt time.Time) Command {
	return Command{
		ItemID:      itemID,
		Title:       title,
		TotalCopies: totalCopies,
		Visible:     visible,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
