package changeitemvisibility

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonItemNotFound = "item is not registered"
)

// Decide
//
//	ERROR: NotFound if the item was never registered
//	IDEMPOTENCY: the item already has the requested visibility
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	exists := false
	visible := false

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemRegistered:
			exists = true
			visible = e.Visible
		case core.ItemVisibilityChanged:
			visible = e.Visible
		}
	}

	if !exists {
		return core.Rejection(
			core.ChangingItemVisibilityFailedEventType,
			core.RejectionSubject{ItemID: command.ItemID.String()},
			core.KindNotFound,
			failureReasonItemNotFound,
			command.OccurredAt,
		)
	}

	if visible == command.Visible {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildItemVisibilityChanged(command.ItemID, command.Visible, command.OccurredAt))
}

func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemRegisteredEventType,
			core.ItemVisibilityChangedEventType,
		).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
		Finalize()
}
