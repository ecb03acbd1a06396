package core

import (
	"time"

	"github.com/google/uuid"
)

const LostDamagedStatusChangedEventType = "LostDamagedStatusChanged"

// LostDamagedStatusChanged moves a record along its state machine. CopyRestored and
// CopyWrittenOff carry the ledger effect decided at the time of the transition.
type LostDamagedStatusChanged struct {
	EventType      EventTypeString
	RecordID       RecordIDString
	ItemID         ItemIDString
	RecordType     RecordType
	PreviousStatus RecordStatus
	NewStatus      RecordStatus
	CopyRestored   bool
	CopyWrittenOff bool
	OccurredAt     OccurredAtTS
}

func BuildLostDamagedStatusChanged(
	recordID, itemID uuid.UUID,
	recordType RecordType,
	previousStatus RecordStatus,
	newStatus RecordStatus,
	effect LedgerEffect,
	occurredAt time.Time,
) LostDamagedStatusChanged {

	return LostDamagedStatusChanged{
		EventType:      LostDamagedStatusChangedEventType,
		RecordID:       recordID.String(),
		ItemID:         itemID.String(),
		RecordType:     recordType,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		CopyRestored:   effect == LedgerEffectRestoreCopy,
		CopyWrittenOff: effect == LedgerEffectWriteOffCopy,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e LostDamagedStatusChanged) IsEventType() EventTypeString {
	return LostDamagedStatusChangedEventType
}

func (e LostDamagedStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LostDamagedStatusChanged) IsErrorEvent() bool {
	return false
}
