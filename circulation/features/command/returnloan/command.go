package returnloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	commandType = "ReturnLoan"
)

// Command returns the loan as of ReturnedAt, which defaults to OccurredAt. A ReturnedAt in the
// past books a return that was observed earlier, e.g. from a book drop.
type Command struct {
	LoanID     uuid.UUID
	ReturnedAt time.Time
	OccurredAt core.OccurredAtTS
}

func (c Command) CommandType() string {
	return commandType
}

// BuildCommand takes an optional observedAt.
func BuildCommand(loanID uuid.UUID, observedAt *time.Time, occurredAt time.Time) Command {
	returnedAt := occurredAt
	if observedAt != nil {
		returnedAt = *observedAt
	}

	return Command{
		LoanID:     loanID,
		ReturnedAt: core.ToOccurredAt(returnedAt),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
