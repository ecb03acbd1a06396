package renewloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Decide_Success_ExtendsByLoanPeriod(t *testing.T) {
	// arrange
	loanID := uuid.New()
	borrowedAt := givenBorrowedAt()
	dueDate := core.DueDateFor(borrowedAt, 14)
	history := core.DomainEvents{givenLoanIssued(t, loanID, borrowedAt)}

	// act
	result := renewloan.Decide(history, renewloan.BuildCommand(loanID, dueDate), core.DefaultSettings())

	// assert
	require.True(t, result.IsSuccess())
	renewed, ok := result.Events[0].(core.LoanRenewed)
	require.True(t, ok)
	assert.Equal(t, dueDate, renewed.PreviousDueDate)
	assert.Equal(t, dueDate.AddDate(0, 0, 14), renewed.NewDueDate)
}

func Test_Decide_Success_RenewTwiceExtendsFromCurrentDueDate(t *testing.T) {
	loanID := uuid.New()
	borrowedAt := givenBorrowedAt()
	dueDate := core.DueDateFor(borrowedAt, 14)
	history := core.DomainEvents{
		givenLoanIssued(t, loanID, borrowedAt),
		core.BuildLoanRenewed(loanID, uuid.New(), uuid.New(), dueDate, dueDate.AddDate(0, 0, 14), borrowedAt.Add(time.Hour)),
	}

	result := renewloan.Decide(history, renewloan.BuildCommand(loanID, dueDate.AddDate(0, 0, 1)), core.DefaultSettings())

	require.True(t, result.IsSuccess())
	assert.Equal(t, dueDate.AddDate(0, 0, 28), result.Events[0].(core.LoanRenewed).NewDueDate)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	loanID := uuid.New()
	borrowedAt := givenBorrowedAt()
	dueDate := core.DueDateFor(borrowedAt, 14)

	testCases := []struct {
		name         string
		history      core.DomainEvents
		now          time.Time
		expectedKind core.ErrorKind
	}{
		{
			name:         "unknown loan",
			now:          borrowedAt,
			expectedKind: core.KindNotFound,
		},
		{
			name: "returned loan",
			history: core.DomainEvents{
				givenLoanIssued(t, loanID, borrowedAt),
				core.BuildLoanReturned(loanID, uuid.New(), uuid.New(), borrowedAt.Add(time.Hour), decimal.Zero, borrowedAt.Add(time.Hour)),
			},
			now:          borrowedAt.Add(2 * time.Hour),
			expectedKind: core.KindAlreadyReturned,
		},
		{
			name:         "overdue loan",
			history:      core.DomainEvents{givenLoanIssued(t, loanID, borrowedAt)},
			now:          dueDate.Add(time.Second),
			expectedKind: core.KindRenewalBlocked,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := renewloan.Decide(tc.history, renewloan.BuildCommand(loanID, tc.now), core.DefaultSettings())

			// assert
			assert.Equal(t, "error", result.Outcome)
			kind, _ := core.KindOf(result.HasError())
			assert.Equal(t, tc.expectedKind, kind)
			assert.Equal(t, core.RenewingLoanFailedEventType, result.Events[0].IsEventType())
		})
	}
}

func givenBorrowedAt() time.Time {
	return core.ToOccurredAt(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
}

func givenLoanIssued(t *testing.T, loanID uuid.UUID, borrowedAt time.Time) core.DomainEvent {
	t.Helper()

	return core.BuildLoanIssued(loanID, uuid.New(), uuid.New(), core.DueDateFor(borrowedAt, 14), borrowedAt)
}
