package library

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/changeitemvisibility"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/collectfine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/issueloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registeritem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reportdamaged"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reportlost"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reserveitem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/updatelostdamagedstatus"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
)

var ErrMissingAppendedEvent = errors.New("handler succeeded without appending the expected event")

type IssueResult struct {
	LoanID               uuid.UUID
	DueDate              time.Time
	ReservationFulfilled bool
}

type ReturnResult struct {
	LoanID     uuid.UUID
	ReturnedAt time.Time
	Fine       decimal.Decimal
}

// RegisterItem adds an item with the given number of copies and returns its new ItemID.
func (s *Service) RegisterItem(ctx context.Context, title string, totalCopies int, visible bool) (uuid.UUID, error) {
	itemID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	if _, err = s.registerItem.Handle(ctx, registeritem.BuildCommand(itemID, title, totalCopies, visible, s.clock())); err != nil {
		return uuid.Nil, err
	}

	return itemID, nil
}

func (s *Service) ChangeItemVisibility(ctx context.Context, itemID uuid.UUID, visible bool) error {
	_, err := s.changeItemVisibility.Handle(ctx, changeitemvisibility.BuildCommand(itemID, visible, s.clock()))

	return err
}

func (s *Service) Issue(ctx context.Context, patronID, itemID uuid.UUID) (IssueResult, error) {
	loanID, err := uuid.NewV7()
	if err != nil {
		return IssueResult{}, err
	}

	result, err := s.issueLoan.Handle(ctx, issueloan.BuildCommand(loanID, itemID, patronID, s.clock()))
	if err != nil {
		return IssueResult{}, err
	}

	issued, ok := shell.AppendedEvent[core.LoanIssued](result)
	if !ok {
		return IssueResult{}, ErrMissingAppendedEvent
	}

	_, fulfilled := shell.AppendedEvent[core.ReservationFulfilled](result)

	return IssueResult{
		LoanID:               loanID,
		DueDate:              issued.DueDate,
		ReservationFulfilled: fulfilled,
	}, nil
}

// Return closes the loan. observedAt is when the copy actually came back, nil means now.
func (s *Service) Return(ctx context.Context, loanID uuid.UUID, observedAt *time.Time) (ReturnResult, error) {
	result, err := s.returnLoan.Handle(ctx, returnloan.BuildCommand(loanID, observedAt, s.clock()))
	if err != nil {
		return ReturnResult{}, err
	}

	returned, ok := shell.AppendedEvent[core.LoanReturned](result)
	if !ok {
		return ReturnResult{}, ErrMissingAppendedEvent
	}

	return ReturnResult{
		LoanID:     loanID,
		ReturnedAt: returned.ReturnedAt,
		Fine:       returned.Fine,
	}, nil
}

// Renew returns the new due date.
func (s *Service) Renew(ctx context.Context, loanID uuid.UUID) (time.Time, error) {
	result, err := s.renewLoan.Handle(ctx, renewloan.BuildCommand(loanID, s.clock()))
	if err != nil {
		return time.Time{}, err
	}

	renewed, ok := shell.AppendedEvent[core.LoanRenewed](result)
	if !ok {
		return time.Time{}, ErrMissingAppendedEvent
	}

	return renewed.NewDueDate, nil
}

func (s *Service) CollectFine(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) error {
	_, err := s.collectFine.Handle(ctx, collectfine.BuildCommand(loanID, amount, s.clock()))

	return err
}

// Reserve returns the new ReservationID.
func (s *Service) Reserve(ctx context.Context, patronID, itemID uuid.UUID) (uuid.UUID, error) {
	reservationID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	if _, err = s.reserveItem.Handle(ctx, reserveitem.BuildCommand(reservationID, itemID, patronID, s.clock())); err != nil {
		return uuid.Nil, err
	}

	return reservationID, nil
}

func (s *Service) CancelReservation(ctx context.Context, patronID, itemID uuid.UUID) error {
	_, err := s.cancelReservation.Handle(ctx, cancelreservation.BuildCommand(itemID, patronID, s.clock()))

	return err
}

// ReportLost returns the RecordID of the new LOST record.
func (s *Service) ReportLost(ctx context.Context, itemID uuid.UUID, details string) (uuid.UUID, error) {
	recordID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	if _, err = s.reportLost.Handle(ctx, reportlost.BuildCommand(recordID, itemID, details, s.clock())); err != nil {
		return uuid.Nil, err
	}

	return recordID, nil
}

// ReportDamaged returns the RecordID of the new DAMAGED record. damageLevel is MINOR, MODERATE or SEVERE.
func (s *Service) ReportDamaged(
	ctx context.Context,
	itemID uuid.UUID,
	details string,
	damageLevel string,
	repairable bool,
) (uuid.UUID, error) {

	recordID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	command := reportdamaged.BuildCommand(recordID, itemID, details, damageLevel, repairable, s.clock())
	if _, err = s.reportDamaged.Handle(ctx, command); err != nil {
		return uuid.Nil, err
	}

	return recordID, nil
}

func (s *Service) UpdateLostDamagedStatus(ctx context.Context, recordID uuid.UUID, newStatus string) error {
	_, err := s.updateLostDamagedStatus.Handle(ctx, updatelostdamagedstatus.BuildCommand(recordID, newStatus, s.clock()))

	return err
}
