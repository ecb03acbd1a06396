package returnloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Decide_Success(t *testing.T) {
	borrowedAt := givenBorrowedAt()
	dueDate := borrowedAt.AddDate(0, 0, 14)

	testCases := []struct {
		name         string
		returnedAt   time.Time
		expectedFine decimal.Decimal
	}{
		{name: "in time", returnedAt: dueDate.Add(-time.Hour), expectedFine: decimal.Zero},
		{name: "on the due date", returnedAt: dueDate, expectedFine: decimal.Zero},
		{name: "less than a day late", returnedAt: dueDate.Add(23 * time.Hour), expectedFine: decimal.Zero},
		{name: "six days late", returnedAt: dueDate.AddDate(0, 0, 6), expectedFine: decimal.NewFromInt(6)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			itemID, patronID, loanID := uuid.New(), uuid.New(), uuid.New()
			history := givenOpenLoan(t, itemID, patronID, loanID, borrowedAt)
			command := returnloan.BuildCommand(loanID, nil, tc.returnedAt)

			// act
			result := returnloan.Decide(history, command, core.DefaultSettings())

			// assert
			require.True(t, result.IsSuccess())
			returned, ok := result.Events[0].(core.LoanReturned)
			require.True(t, ok)
			assert.Equal(t, itemID.String(), returned.ItemID)
			assert.Equal(t, patronID.String(), returned.PatronID)
			assert.True(t, tc.expectedFine.Equal(returned.Fine), "fine %s", returned.Fine)
		})
	}
}

func Test_Decide_Success_WithObservedReturnTime(t *testing.T) {
	// arrange
	itemID, patronID, loanID := uuid.New(), uuid.New(), uuid.New()
	borrowedAt := givenBorrowedAt()
	observedAt := borrowedAt.AddDate(0, 0, 15)
	now := borrowedAt.AddDate(0, 0, 30)

	// act
	result := returnloan.Decide(
		givenOpenLoan(t, itemID, patronID, loanID, borrowedAt),
		returnloan.BuildCommand(loanID, &observedAt, now),
		core.DefaultSettings(),
	)

	// assert
	require.True(t, result.IsSuccess())
	returned := result.Events[0].(core.LoanReturned)
	assert.Equal(t, observedAt, returned.ReturnedAt)
	assert.Equal(t, now, returned.OccurredAt)
	assert.True(t, decimal.NewFromInt(1).Equal(returned.Fine))
}

func Test_Decide_BusinessErrors(t *testing.T) {
	itemID, patronID, loanID := uuid.New(), uuid.New(), uuid.New()
	borrowedAt := givenBorrowedAt()
	earlier := borrowedAt.Add(-time.Minute)
	tomorrow := borrowedAt.AddDate(0, 0, 1)

	returnedHistory := append(
		givenOpenLoan(t, itemID, patronID, loanID, borrowedAt),
		core.BuildLoanReturned(loanID, itemID, patronID, borrowedAt.Add(time.Hour), decimal.Zero, borrowedAt.Add(time.Hour)),
	)

	testCases := []struct {
		name         string
		history      core.DomainEvents
		command      returnloan.Command
		expectedKind core.ErrorKind
	}{
		{
			name:         "unknown loan",
			history:      core.DomainEvents{},
			command:      returnloan.BuildCommand(loanID, nil, borrowedAt),
			expectedKind: core.KindNotFound,
		},
		{
			name:         "returned twice",
			history:      returnedHistory,
			command:      returnloan.BuildCommand(loanID, nil, borrowedAt.Add(2*time.Hour)),
			expectedKind: core.KindAlreadyReturned,
		},
		{
			name:         "observed before borrowed",
			history:      givenOpenLoan(t, itemID, patronID, loanID, borrowedAt),
			command:      returnloan.BuildCommand(loanID, &earlier, borrowedAt.Add(time.Hour)),
			expectedKind: core.KindInvalidArgument,
		},
		{
			name:         "observed after now",
			history:      givenOpenLoan(t, itemID, patronID, loanID, borrowedAt),
			command:      returnloan.BuildCommand(loanID, &tomorrow, borrowedAt.Add(time.Hour)),
			expectedKind: core.KindInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := returnloan.Decide(tc.history, tc.command, core.DefaultSettings())

			// assert
			assert.Equal(t, "error", result.Outcome)
			kind, _ := core.KindOf(result.HasError())
			assert.Equal(t, tc.expectedKind, kind)
			rejected, ok := result.Events[0].(core.CirculationRequestRejected)
			require.True(t, ok)
			assert.Equal(t, core.ReturningLoanFailedEventType, rejected.EventType)
		})
	}
}

func Test_Decide_Aborts_OnOverRelease(t *testing.T) {
	// arrange
	itemID, loanID := uuid.New(), uuid.New()
	borrowedAt := givenBorrowedAt()
	history := core.DomainEvents{
		// the loan was issued before the item was (re)registered, which leaves nothing to release
		core.BuildLoanIssued(loanID, itemID, uuid.New(), borrowedAt.AddDate(0, 0, 14), borrowedAt),
		core.BuildItemRegistered(itemID, "Dune", 1, true, borrowedAt.Add(time.Minute)),
	}

	// act
	result := returnloan.Decide(history, returnloan.BuildCommand(loanID, nil, borrowedAt.Add(time.Hour)), core.DefaultSettings())

	// assert
	assert.True(t, result.IsAborted())
	assert.False(t, result.HasEventsToAppend())
	assert.ErrorIs(t, result.HasError(), core.ErrOverRelease)
}

func givenBorrowedAt() time.Time {
	return core.ToOccurredAt(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
}

func givenOpenLoan(t *testing.T, itemID, patronID, loanID uuid.UUID, borrowedAt time.Time) core.DomainEvents {
	t.Helper()

	return core.DomainEvents{
		core.BuildItemRegistered(itemID, "Dune", 1, true, borrowedAt.Add(-time.Hour)),
		core.BuildLoanIssued(loanID, itemID, patronID, core.DueDateFor(borrowedAt, 14), borrowedAt),
	}
}
