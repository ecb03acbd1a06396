package collectfine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/collectfine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	loanID := uuid.New()
	history := givenReturnedLateLoan(t, loanID)
	command := collectfine.BuildCommand(loanID, decimal.RequireFromString("4.50"), time.Now())

	// act
	result := collectfine.Decide(history, command)

	// assert
	require.True(t, result.IsSuccess())
	collected, ok := result.Events[0].(core.FineCollected)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("4.5").Equal(collected.Amount))
	assert.NotEmpty(t, collected.ItemID)
	assert.NotEmpty(t, collected.PatronID)
}

func Test_Decide_Success_ZeroAmountWaivesTheFine(t *testing.T) {
	loanID := uuid.New()

	result := collectfine.Decide(givenReturnedLateLoan(t, loanID), collectfine.BuildCommand(loanID, decimal.Zero, time.Now()))

	require.True(t, result.IsSuccess())
	assert.True(t, result.Events[0].(core.FineCollected).Amount.IsZero())
}

func Test_Decide_Idempotent_WhenSameAmountWasCollected(t *testing.T) {
	// arrange
	loanID := uuid.New()
	history := append(
		givenReturnedLateLoan(t, loanID),
		core.BuildFineCollected(loanID, uuid.New(), uuid.New(), decimal.NewFromInt(3), time.Now()),
	)

	// act
	result := collectfine.Decide(history, collectfine.BuildCommand(loanID, decimal.RequireFromString("3.00"), time.Now()))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	loanID := uuid.New()

	testCases := []struct {
		name        string
		history     core.DomainEvents
		amount      decimal.Decimal
		expectedErr error
	}{
		{
			name:        "unknown loan",
			amount:      decimal.NewFromInt(1),
			expectedErr: core.ErrNotFound,
		},
		{
			name:        "negative amount",
			history:     givenReturnedLateLoan(t, loanID),
			amount:      decimal.NewFromInt(-1),
			expectedErr: core.ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := collectfine.Decide(tc.history, collectfine.BuildCommand(loanID, tc.amount, time.Now()))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.Equal(t, core.CollectingFineFailedEventType, result.Events[0].IsEventType())
		})
	}
}

func givenReturnedLateLoan(t *testing.T, loanID uuid.UUID) core.DomainEvents {
	t.Helper()

	borrowedAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	dueDate := core.DueDateFor(borrowedAt, 14)
	itemID, patronID := uuid.New(), uuid.New()

	return core.DomainEvents{
		core.BuildLoanIssued(loanID, itemID, patronID, dueDate, borrowedAt),
		core.BuildLoanReturned(loanID, itemID, patronID, dueDate.AddDate(0, 0, 6), decimal.NewFromInt(6), dueDate.AddDate(0, 0, 6)),
	}
}
