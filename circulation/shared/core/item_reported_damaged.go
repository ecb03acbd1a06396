package core

import (
	"time"

	"github.com/google/uuid"
)

const ItemReportedDamagedEventType = "ItemReportedDamaged"

// ItemReportedDamaged opens a DAMAGED record. CopyWithdrawn tells whether the copy left the
// lending pool, which is the case for severe or irreparable damage.
type ItemReportedDamaged struct {
	EventType     EventTypeString
	RecordID      RecordIDString
	ItemID        ItemIDString
	Details       string
	DamageLevel   DamageLevel
	Repairable    bool
	CopyWithdrawn bool
	OccurredAt    OccurredAtTS
}

func BuildItemReportedDamaged(
	recordID, itemID uuid.UUID,
	details string,
	damageLevel DamageLevel,
	repairable bool,
	occurredAt time.Time,
) ItemReportedDamaged {

	return ItemReportedDamaged{
		EventType:     ItemReportedDamagedEventType,
		RecordID:      recordID.String(),
		ItemID:        itemID.String(),
		Details:       details,
		DamageLevel:   damageLevel,
		Repairable:    repairable,
		CopyWithdrawn: DamageWithdrawsCopy(damageLevel, repairable),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ItemReportedDamaged) IsEventType() EventTypeString {
	return ItemReportedDamagedEventType
}

func (e ItemReportedDamaged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ItemReportedDamaged) IsErrorEvent() bool {
	return false
}
