package reportdamaged

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
//	ERROR: InvalidArgument for an unknown damage level
//	ERROR: NotFound if the item is not registered
//	ERROR: OutOfStock if the copy must be withdrawn but none is on the shelf
//	THEN: ItemReportedDamaged, withdrawing the copy for SEVERE or irreparable damage
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	if _, exists := state.Record(command.RecordID.String()); exists {
		return core.IdempotentDecision()
	}

	subject := core.RejectionSubject{ItemID: command.ItemID.String(), RecordID: command.RecordID.String()}

	damageLevel, err := core.ParseDamageLevel(command.DamageLevel)
	if err != nil {
		return core.RejectionOrAbort(core.ReportingItemDamagedFailedEventType, subject, err, command.OccurredAt)
	}

	item := state.Item(command.ItemID.String())
	if !item.Exists {
		return core.Rejection(
			core.ReportingItemDamagedFailedEventType,
			subject,
			core.KindNotFound,
			failureReasonItemNotFound,
			command.OccurredAt,
		)
	}

	if core.DamageWithdrawsCopy(damageLevel, command.Repairable) {
		if err = item.ReserveOneCopy(); err != nil {
			return core.RejectionOrAbort(core.ReportingItemDamagedFailedEventType, subject, err, command.OccurredAt)
		}
	}

	return core.SuccessDecision(
		core.BuildItemReportedDamaged(
			command.RecordID,
			command.ItemID,
			command.Details,
			damageLevel,
			command.Repairable,
			command.OccurredAt,
		),
	)
}

func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
		Finalize()
}
