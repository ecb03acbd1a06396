package collectfine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "CollectFine"
)

type Command struct {
	LoanID     uuid.UUID
	Amount     decimal.Decimal
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(loanID uuid.UUID, amount decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		Amount:     amount,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
