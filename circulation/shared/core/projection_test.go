package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

var projectionStart = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func Test_ProjectCirculationState_LedgerFollowsLoans(t *testing.T) {
	// arrange
	itemID, patronA, patronB := uuid.New(), uuid.New(), uuid.New()
	loanA, loanB := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 3, true, projectionStart),
		core.BuildLoanIssued(loanA, itemID, patronA, projectionStart.AddDate(0, 0, 14), projectionStart),
		core.BuildLoanIssued(loanB, itemID, patronB, projectionStart.AddDate(0, 0, 14), projectionStart),
		core.BuildLoanReturned(loanA, itemID, patronA, projectionStart.AddDate(0, 0, 3), decimal.Zero, projectionStart.AddDate(0, 0, 3)),
	}

	// act
	state, err := core.ProjectCirculationState(history)

	// assert
	require.NoError(t, err)
	item := state.Item(itemID.String())
	assert.Equal(t, 3, item.TotalCopies)
	assert.Equal(t, 2, item.AvailableCopies)
	assert.Len(t, state.OpenLoansOfItem(itemID.String()), 1)
	assert.Equal(t, item.TotalCopies-item.AvailableCopies, len(state.OpenLoansOfItem(itemID.String())))

	returned, found := state.Loan(loanA.String())
	require.True(t, found)
	assert.Equal(t, core.LoanStateReturned, returned.State)
	assert.False(t, returned.FinePaid.Valid)
	require.NotNil(t, returned.ReturnedAt)
}

func Test_ProjectCirculationState_TracksReservationsAndRecords(t *testing.T) {
	// arrange
	itemID, patronA, patronB := uuid.New(), uuid.New(), uuid.New()
	loanID, recordID := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 2, true, projectionStart),
		core.BuildItemReportedDamaged(recordID, itemID, "torn", core.DamageLevelSevere, true, projectionStart),
		core.BuildLoanIssued(loanID, itemID, patronA, projectionStart.AddDate(0, 0, 14), projectionStart),
		core.BuildItemReserved(uuid.New(), itemID, patronB, projectionStart.Add(time.Hour)),
	}

	// act
	state, err := core.ProjectCirculationState(history)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, state.Item(itemID.String()).AvailableCopies)
	assert.Equal(t, 1, state.PendingWithdrawals(itemID.String()))
	_, reserved := state.Reservation(itemID.String(), patronB.String())
	assert.True(t, reserved)
	record, found := state.Record(recordID.String())
	require.True(t, found)
	assert.True(t, record.IsPendingWithdrawal())
}

func Test_ProjectCirculationState_StatusChangesMoveTheLedger(t *testing.T) {
	// arrange
	itemID, lostRecord, damagedRecord := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 3, true, projectionStart),
		core.BuildItemReportedLost(lostRecord, itemID, "not on shelf", projectionStart),
		core.BuildItemReportedDamaged(damagedRecord, itemID, "water", core.DamageLevelMinor, true, projectionStart),
		core.BuildLostDamagedStatusChanged(
			lostRecord, itemID, core.RecordTypeLost, core.RecordStatusReported, core.RecordStatusClosed,
			core.LedgerEffectWriteOffCopy, projectionStart,
		),
		core.BuildLostDamagedStatusChanged(
			damagedRecord, itemID, core.RecordTypeDamaged, core.RecordStatusReported, core.RecordStatusIrreparable,
			core.LedgerEffectWriteOffCopy, projectionStart,
		),
	}

	// act
	state, err := core.ProjectCirculationState(history)

	// assert
	require.NoError(t, err)
	item := state.Item(itemID.String())
	assert.Equal(t, 1, item.TotalCopies)
	assert.Equal(t, 1, item.AvailableCopies)
	assert.Equal(t, 0, state.PendingWithdrawals(itemID.String()))
}

func Test_ProjectCirculationState_IgnoresRejections(t *testing.T) {
	itemID := uuid.New()
	history := core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 1, true, projectionStart),
		core.BuildCirculationRequestRejected(
			core.IssuingLoanFailedEventType,
			core.RejectionSubject{ItemID: itemID.String()},
			core.NewError(core.KindOutOfStock, "no copy"),
			projectionStart,
		),
	}

	state, err := core.ProjectCirculationState(history)

	require.NoError(t, err)
	assert.Equal(t, 1, state.Item(itemID.String()).AvailableCopies)
}

func Test_ProjectCirculationState_FailsOnInconsistentHistory(t *testing.T) {
	itemID, patronID := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 1, true, projectionStart),
		core.BuildLoanReturned(uuid.New(), itemID, patronID, projectionStart, decimal.Zero, projectionStart),
	}

	_, err := core.ProjectCirculationState(history)

	assert.ErrorIs(t, err, core.ErrInvariantViolation)
}

func Test_ProjectCirculationState_SkipsLedgerOfUnregisteredItems(t *testing.T) {
	// a patron-scoped history contains loans of items whose registration is outside the boundary
	itemID, patronID := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildLoanIssued(uuid.New(), itemID, patronID, projectionStart.AddDate(0, 0, 14), projectionStart),
	}

	state, err := core.ProjectCirculationState(history)

	require.NoError(t, err)
	assert.False(t, state.Item(itemID.String()).Exists)
	assert.Len(t, state.OpenLoansOfPatron(patronID.String()), 1)
}

func Test_ProjectCirculationState_CollectedFineOverridesAssessedFine(t *testing.T) {
	itemID, patronID, loanID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 1, true, projectionStart),
		core.BuildLoanIssued(loanID, itemID, patronID, projectionStart.AddDate(0, 0, 14), projectionStart),
		core.BuildLoanReturned(loanID, itemID, patronID, projectionStart.AddDate(0, 0, 20), decimal.NewFromInt(6), projectionStart.AddDate(0, 0, 20)),
		core.BuildFineCollected(loanID, itemID, patronID, decimal.NewFromInt(4), projectionStart.AddDate(0, 0, 21)),
	}

	state, err := core.ProjectCirculationState(history)

	require.NoError(t, err)
	loan, _ := state.Loan(loanID.String())
	assert.True(t, loan.FinePaid.Valid)
	assert.True(t, decimal.NewFromInt(4).Equal(loan.FinePaid.Decimal))
	assert.True(t, decimal.NewFromInt(4).Equal(loan.FineAt(projectionStart.AddDate(0, 1, 0), decimal.NewFromInt(1))))
}
