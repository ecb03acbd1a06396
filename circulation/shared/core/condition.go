package core

import (
	"strings"
	"time"
)

type RecordType string

const (
	RecordTypeLost    RecordType = "LOST"
	RecordTypeDamaged RecordType = "DAMAGED"
)

type RecordStatus string

const (
	RecordStatusReported      RecordStatus = "REPORTED"
	RecordStatusInvestigating RecordStatus = "INVESTIGATING"
	RecordStatusFound         RecordStatus = "FOUND"
	RecordStatusRepaired      RecordStatus = "REPAIRED"
	RecordStatusIrreparable   RecordStatus = "IRREPARABLE"
	RecordStatusReplaced      RecordStatus = "REPLACED"
	RecordStatusClosed        RecordStatus = "CLOSED"
)

type DamageLevel string

const (
	DamageLevelMinor    DamageLevel = "MINOR"
	DamageLevelModerate DamageLevel = "MODERATE"
	DamageLevelSevere   DamageLevel = "SEVERE"
)

// LedgerEffect is what a status transition does to the item's copy counts.
type LedgerEffect int

const (
	LedgerEffectNone LedgerEffect = iota
	LedgerEffectRestoreCopy
	LedgerEffectWriteOffCopy
)

// DamageWithdrawsCopy is true if a damaged copy must leave the lending pool.
func DamageWithdrawsCopy(level DamageLevel, repairable bool) bool {
	return level == DamageLevelSevere || !repairable
}

func ParseDamageLevel(input string) (DamageLevel, error) {
	switch level := DamageLevel(strings.ToUpper(strings.TrimSpace(input))); level {
	case DamageLevelMinor, DamageLevelModerate, DamageLevelSevere:
		return level, nil
	default:
		return "", NewError(KindInvalidArgument, "unknown damage level "+input)
	}
}

func ParseRecordStatus(input string) (RecordStatus, error) {
	switch status := RecordStatus(strings.ToUpper(strings.TrimSpace(input))); status {
	case RecordStatusReported,
		RecordStatusInvestigating,
		RecordStatusFound,
		RecordStatusRepaired,
		RecordStatusIrreparable,
		RecordStatusReplaced,
		RecordStatusClosed:

		return status, nil
	default:
		return "", NewError(KindInvalidArgument, "unknown record status "+input)
	}
}

func (s RecordStatus) IsTerminal() bool {
	return s != RecordStatusReported && s != RecordStatusInvestigating
}

// LostDamagedRecord is the projected state of one loss or damage report.
type LostDamagedRecord struct {
	RecordID      RecordIDString
	ItemID        ItemIDString
	Type          RecordType
	Status        RecordStatus
	Details       string
	DamageLevel   DamageLevel
	Repairable    bool
	CopyWithdrawn bool
	ReportedAt    time.Time
}

// IsPendingWithdrawal is true while the record holds a copy off the shelf.
func (r LostDamagedRecord) IsPendingWithdrawal() bool {
	return r.CopyWithdrawn && !r.Status.IsTerminal()
}

var terminalStatusesByType = map[RecordType][]RecordStatus{
	RecordTypeLost:    {RecordStatusFound, RecordStatusReplaced, RecordStatusClosed},
	RecordTypeDamaged: {RecordStatusRepaired, RecordStatusIrreparable, RecordStatusReplaced, RecordStatusClosed},
}

// CanTransitionTo reports whether newStatus is a legal next status. Staying in the current
// status is not a transition, callers treat it as idempotent before asking.
func (r LostDamagedRecord) CanTransitionTo(newStatus RecordStatus) bool {
	if r.Status.IsTerminal() {
		return false
	}

	if newStatus == RecordStatusInvestigating {
		return r.Status == RecordStatusReported
	}

	for _, allowed := range terminalStatusesByType[r.Type] {
		if allowed == newStatus {
			return true
		}
	}

	return false
}

// EffectOf returns the ledger effect of moving the record to newStatus.
func (r LostDamagedRecord) EffectOf(newStatus RecordStatus) LedgerEffect {
	switch newStatus {
	case RecordStatusFound, RecordStatusRepaired, RecordStatusReplaced:
		if r.CopyWithdrawn {
			return LedgerEffectRestoreCopy
		}
	case RecordStatusIrreparable:
		return LedgerEffectWriteOffCopy
	case RecordStatusClosed:
		if r.CopyWithdrawn {
			return LedgerEffectWriteOffCopy
		}
	}

	return LedgerEffectNone
}

// ApplyEffect changes the ledger according to effect. wasWithdrawn tells whether the copy
// is currently off the shelf.
func (l *ItemLedger) ApplyEffect(effect LedgerEffect, wasWithdrawn bool) error {
	switch effect {
	case LedgerEffectRestoreCopy:
		return l.ReleaseOneCopy()
	case LedgerEffectWriteOffCopy:
		if wasWithdrawn {
			return l.AdjustCapacity(-1, 0)
		}

		if l.AvailableCopies <= 0 {
			return NewError(KindOutOfStock, "no copy on the shelf to write off")
		}

		return l.AdjustCapacity(-1, -1)
	default:
		return nil
	}
}
