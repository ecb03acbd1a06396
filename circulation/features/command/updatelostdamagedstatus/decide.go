package updatelostdamagedstatus

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	failureReasonRecordNotFound = "lost/damaged record does not exist"
)

// Decide
//
//	ERROR: InvalidArgument for an unknown status
//	ERROR: NotFound for an unknown record
//	IDEMPOTENT: the record has the status already
//	ERROR: InvalidStatusTransition if the state machine does not allow the move
//	ERROR: OutOfStock if a circulating copy is written off while none is on the shelf
//	THEN: LostDamagedStatusChanged carrying the ledger effect
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return core.AbortDecision(err)
	}

	subject := core.RejectionSubject{RecordID: command.RecordID.String()}

	newStatus, err := core.ParseRecordStatus(command.NewStatus)
	if err != nil {
		return core.RejectionOrAbort(core.ChangingLostDamagedStatusFailedEventType, subject, err, command.OccurredAt)
	}

	record, found := state.Record(command.RecordID.String())
	if !found {
		return core.Rejection(
			core.ChangingLostDamagedStatusFailedEventType,
			subject,
			core.KindNotFound,
			failureReasonRecordNotFound,
			command.OccurredAt,
		)
	}

	subject.ItemID = record.ItemID

	if record.Status == newStatus {
		return core.IdempotentDecision()
	}

	if !record.CanTransitionTo(newStatus) {
		return core.Rejection(
			core.ChangingLostDamagedStatusFailedEventType,
			subject,
			core.KindInvalidStatusTransition,
			fmt.Sprintf("%s record cannot move from %s to %s", record.Type, record.Status, newStatus),
			command.OccurredAt,
		)
	}

	effect := record.EffectOf(newStatus)

	if item := state.Item(record.ItemID); item.Exists {
		if err = item.ApplyEffect(effect, record.CopyWithdrawn); err != nil {
			return core.RejectionOrAbort(core.ChangingLostDamagedStatusFailedEventType, subject, err, command.OccurredAt)
		}
	}

	return core.SuccessDecision(
		core.BuildLostDamagedStatusChanged(
			command.RecordID,
			core.IDOf(record.ItemID),
			record.Type,
			record.Status,
			newStatus,
			effect,
			command.OccurredAt,
		),
	)
}

// BuildRecordFilter selects the events of one lost/damaged record.
func BuildRecordFilter(recordID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemReportedLostEventType,
			core.ItemReportedDamagedEventType,
			core.LostDamagedStatusChangedEventType,
		).
		AndAnyPredicateOf(eventstore.P("RecordID", recordID.String())).
		Finalize()
}

// BuildEventFilter selects the item's ledger, its records included.
func BuildEventFilter(itemID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.CirculationEventTypes()...).
		AndAnyPredicateOf(eventstore.P("ItemID", itemID)).
		Finalize()
}
