package reportlost

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
//	IDEMPOTENT: the record exists already
//	ERROR: NotFound if the item is not registered
//	ERROR: OutOfStock if no copy is on the shelf to withdraw
//	THEN: ItemReportedLost with the copy withdrawn
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	if _, exists := state.Record(command.RecordID.String()); exists {
		return core.IdempotentDecision()
	}

	subject := core.RejectionSubject{ItemID: command.ItemID.String(), RecordID: command.RecordID.String()}

	item := state.Item(command.ItemID.String())
	if !item.Exists {
		return core.Rejection(
			core.ReportingItemLostFailedEventType,
			subject,
			core.KindNotFound,
			failureReasonItemNotFound,
			command.OccurredAt,
		)
	}

	if err = item.ReserveOneCopy(); err != nil {
		return core.RejectionOrAbort(core.ReportingItemLostFailedEventType, subject, err, command.OccurredAt)
	}

	return core.SuccessDecision(
		core.BuildItemReportedLost(command.RecordID, command.ItemID, command.Details, command.OccurredAt),
	)
}

// BuildEventFilter selects the item's ledger. Hidden items can be reported too.
func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
		Finalize()
}
