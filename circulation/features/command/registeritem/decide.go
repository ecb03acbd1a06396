package registeritem

import (
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonEmptyTitle        = "title must not be empty"
	failureReasonNegativeCopies = "the number of copies must not be negative"
)

// Decide registers the item unless it exists already.
//
//	GIVEN: an unknown ItemID
//	WHEN: RegisterItem is received
//	THEN: ItemRegistered with total = available = TotalCopies
//	ERROR: InvalidArgument for an empty title or TotalCopies < 1
//	IDEMPOTENCY: the item is registered already
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	for _, event := range history {
		if e, ok := event.(core.ItemRegistered); ok && e.ItemID == command.ItemID.String() {
			return core.IdempotentDecision()
		}
	}

	subject := core.RejectionSubject{ItemID: command.ItemID.String()}

	if strings.TrimSpace(command.Title) == "" {
		return core.Rejection(core.RegisteringItemFailedEventType, subject, core.KindInvalidArgument, failureReasonEmptyTitle, command.OccurredAt)
	}

	if command.TotalCopies < 0 {
		return core.Rejection(core.RegisteringItemFailedEventType, subject, core.KindInvalidArgument, failureReasonNegativeCopies, command.OccurredAt)
	}

	return core.SuccessDecision(
		core.BuildItemRegistered(
			command.ItemID,
			strings.TrimSpace(command.Title),
			command.TotalCopies,
			command.Visible,
			command.OccurredAt,
		),
	)
}

func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ItemRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
		Finalize()
}
