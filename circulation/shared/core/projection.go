package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// CirculationState is the fold of a (filtered) history. Loans, reservations and records are
// projected for whatever the history contains; ledger changes are only applied to items whose
// ItemRegistered event is part of the history, so a patron-scoped history that brings in loans
// of other items does not produce bogus ledgers.
type CirculationState struct {
	items        map[ItemIDString]*ItemLedger
	loans        map[LoanIDString]*Loan
	loanOrder    []LoanIDString
	reservations map[reservationKey]Reservation
	records      map[RecordIDString]*LostDamagedRecord
}

// ProjectCirculationState replays the history in order. It fails with an InvariantViolation
// if the history breaks the ledger rules, which means the log itself is inconsistent.
func ProjectCirculationState(history DomainEvents) (CirculationState, error) {
	s := CirculationState{
		items:        make(map[ItemIDString]*ItemLedger),
		loans:        make(map[LoanIDString]*Loan),
		reservations: make(map[reservationKey]Reservation),
		records:      make(map[RecordIDString]*LostDamagedRecord),
	}

	for _, event := range history {
		if event.IsErrorEvent() {
			continue
		}

		if err := s.apply(event); err != nil {
			return CirculationState{}, NewError(
				KindInvariantViolation,
				fmt.Sprintf("replaying %s: %s", event.IsEventType(), err),
			)
		}
	}

	return s, nil
}

func (s *CirculationState) apply(event DomainEvent) error {
	switch e := event.(type) {
	case ItemRegistered:
		if _, exists := s.items[e.ItemID]; exists {
			return fmt.Errorf("item %s registered twice", e.ItemID)
		}

		s.items[e.ItemID] = &ItemLedger{
			ItemID:          e.ItemID,
			Title:           e.Title,
			Exists:          true,
			Visible:         e.Visible,
			TotalCopies:     e.TotalCopies,
			AvailableCopies: e.TotalCopies,
		}

	case ItemVisibilityChanged:
		if item, ok := s.items[e.ItemID]; ok {
			item.Visible = e.Visible
		}

	case LoanIssued:
		s.loans[e.LoanID] = &Loan{
			LoanID:     e.LoanID,
			ItemID:     e.ItemID,
			PatronID:   e.PatronID,
			State:      LoanStateActive,
			BorrowedAt: e.OccurredAt,
			DueDate:    e.DueDate,
		}
		s.loanOrder = append(s.loanOrder, e.LoanID)

		if item, ok := s.items[e.ItemID]; ok {
			return item.ReserveOneCopy()
		}

	case LoanRenewed:
		if loan, ok := s.loans[e.LoanID]; ok {
			loan.DueDate = e.NewDueDate
			loan.RenewalCount++
		}

	case LoanReturned:
		if loan, ok := s.loans[e.LoanID]; ok {
			returnedAt := e.ReturnedAt
			loan.State = LoanStateReturned
			loan.ReturnedAt = &returnedAt
			loan.FinePaid = nullableFine(e.Fine)
		}

		if item, ok := s.items[e.ItemID]; ok {
			return item.ReleaseOneCopy()
		}

	case FineCollected:
		if loan, ok := s.loans[e.LoanID]; ok {
			loan.FinePaid = decimal.NewNullDecimal(e.Amount)
		}

	case ItemReserved:
		s.reservations[reservationKey{itemID: e.ItemID, patronID: e.PatronID}] = Reservation{
			ReservationID: e.ReservationID,
			ItemID:        e.ItemID,
			PatronID:      e.PatronID,
			ReservedAt:    e.OccurredAt,
		}

	case ReservationCanceled:
		delete(s.reservations, reservationKey{itemID: e.ItemID, patronID: e.PatronID})

	case ReservationFulfilled:
		delete(s.reservations, reservationKey{itemID: e.ItemID, patronID: e.PatronID})

	case ItemReportedLost:
		s.records[e.RecordID] = &LostDamagedRecord{
			RecordID:      e.RecordID,
			ItemID:        e.ItemID,
			Type:          RecordTypeLost,
			Status:        RecordStatusReported,
			Details:       e.Details,
			CopyWithdrawn: e.CopyWithdrawn,
			ReportedAt:    e.OccurredAt,
		}

		return s.withdrawIf(e.CopyWithdrawn, e.ItemID)

	case ItemReportedDamaged:
		s.records[e.RecordID] = &LostDamagedRecord{
			RecordID:      e.RecordID,
			ItemID:        e.ItemID,
			Type:          RecordTypeDamaged,
			Status:        RecordStatusReported,
			Details:       e.Details,
			DamageLevel:   e.DamageLevel,
			Repairable:    e.Repairable,
			CopyWithdrawn: e.CopyWithdrawn,
			ReportedAt:    e.OccurredAt,
		}

		return s.withdrawIf(e.CopyWithdrawn, e.ItemID)

	case LostDamagedStatusChanged:
		record, ok := s.records[e.RecordID]
		if !ok {
			return nil
		}

		record.Status = e.NewStatus

		item, ok := s.items[e.ItemID]
		if !ok {
			return nil
		}

		switch {
		case e.CopyRestored:
			return item.ApplyEffect(LedgerEffectRestoreCopy, record.CopyWithdrawn)
		case e.CopyWrittenOff:
			return item.ApplyEffect(LedgerEffectWriteOffCopy, record.CopyWithdrawn)
		}
	}

	return nil
}

func (s *CirculationState) withdrawIf(withdrawn bool, itemID ItemIDString) error {
	item, ok := s.items[itemID]
	if !withdrawn || !ok {
		return nil
	}

	return item.ReserveOneCopy()
}

// Item returns the ledger of the item; Exists is false if it was never registered.
func (s CirculationState) Item(itemID ItemIDString) ItemLedger {
	if item, ok := s.items[itemID]; ok {
		return *item
	}

	return ItemLedger{ItemID: itemID}
}

func (s CirculationState) Loan(loanID LoanIDString) (Loan, bool) {
	loan, ok := s.loans[loanID]
	if !ok {
		return Loan{}, false
	}

	return *loan, true
}

// Loans returns all loans in the order they were issued.
func (s CirculationState) Loans() []Loan {
	return s.loansWhere(func(Loan) bool { return true })
}

func (s CirculationState) OpenLoansOfPatron(patronID PatronIDString) []Loan {
	return s.loansWhere(func(l Loan) bool { return l.IsOpen() && l.PatronID == patronID })
}

func (s CirculationState) OpenLoansOfItem(itemID ItemIDString) []Loan {
	return s.loansWhere(func(l Loan) bool { return l.IsOpen() && l.ItemID == itemID })
}

func (s CirculationState) OpenLoanOf(patronID PatronIDString, itemID ItemIDString) (Loan, bool) {
	open := s.loansWhere(func(l Loan) bool { return l.IsOpen() && l.PatronID == patronID && l.ItemID == itemID })
	if len(open) == 0 {
		return Loan{}, false
	}

	return open[0], true
}

func (s CirculationState) loansWhere(matches func(Loan) bool) []Loan {
	result := make([]Loan, 0)

	for _, loanID := range s.loanOrder {
		if loan := *s.loans[loanID]; matches(loan) {
			result = append(result, loan)
		}
	}

	return result
}

func (s CirculationState) Reservation(itemID ItemIDString, patronID PatronIDString) (Reservation, bool) {
	reservation, ok := s.reservations[reservationKey{itemID: itemID, patronID: patronID}]

	return reservation, ok
}

// ReservationsForItem returns the open reservations sorted by reservation time. The order is
// informational, reservations do not form a queue.
func (s CirculationState) ReservationsForItem(itemID ItemIDString) []Reservation {
	result := make([]Reservation, 0)

	for key, reservation := range s.reservations {
		if key.itemID == itemID {
			result = append(result, reservation)
		}
	}

	slices.SortFunc(result, func(a, b Reservation) int {
		if c := a.ReservedAt.Compare(b.ReservedAt); c != 0 {
			return c
		}

		return strings.Compare(a.PatronID, b.PatronID)
	})

	return result
}

func (s CirculationState) Record(recordID RecordIDString) (LostDamagedRecord, bool) {
	record, ok := s.records[recordID]
	if !ok {
		return LostDamagedRecord{}, false
	}

	return *record, true
}

// PendingWithdrawals counts the copies of the item currently held off the shelf by open records.
func (s CirculationState) PendingWithdrawals(itemID ItemIDString) int {
	count := 0

	for _, record := range s.records {
		if record.ItemID == itemID && record.IsPendingWithdrawal() {
			count++
		}
	}

	return count
}
