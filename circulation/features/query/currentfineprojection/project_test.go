package currentfineprojection_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/currentfineprojection"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Project(t *testing.T) {
	loanID, itemID, patronID := uuid.New(), uuid.New(), uuid.New()
	borrowedAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	dueDate := core.DueDateFor(borrowedAt, 14)
	issued := core.BuildLoanIssued(loanID, itemID, patronID, dueDate, borrowedAt)

	testCases := []struct {
		name          string
		history       core.DomainEvents
		asOf          time.Time
		expectedFine  decimal.Decimal
		expectedFinal bool
	}{
		{
			name:         "open loan before due date",
			history:      core.DomainEvents{issued},
			asOf:         dueDate.Add(-time.Hour),
			expectedFine: decimal.Zero,
		},
		{
			name:         "open loan accrues per full day",
			history:      core.DomainEvents{issued},
			asOf:         dueDate.AddDate(0, 0, 3).Add(5 * time.Hour),
			expectedFine: decimal.NewFromInt(3),
		},
		{
			name: "returned loan keeps its assessed fine",
			history: core.DomainEvents{
				issued,
				core.BuildLoanReturned(loanID, itemID, patronID, dueDate.AddDate(0, 0, 6), decimal.NewFromInt(6), dueDate.AddDate(0, 0, 6)),
			},
			asOf:          dueDate.AddDate(0, 0, 60),
			expectedFine:  decimal.NewFromInt(6),
			expectedFinal: true,
		},
		{
			name: "collected amount replaces the assessed fine",
			history: core.DomainEvents{
				issued,
				core.BuildLoanReturned(loanID, itemID, patronID, dueDate.AddDate(0, 0, 6), decimal.NewFromInt(6), dueDate.AddDate(0, 0, 6)),
				core.BuildFineCollected(loanID, itemID, patronID, decimal.NewFromInt(4), dueDate.AddDate(0, 0, 7)),
			},
			asOf:          dueDate.AddDate(0, 0, 60),
			expectedFine:  decimal.NewFromInt(4),
			expectedFinal: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := currentfineprojection.Project(
				tc.history,
				currentfineprojection.BuildQuery(loanID, tc.asOf),
				core.DefaultSettings(),
			)

			// assert
			require.NoError(t, err)
			assert.True(t, tc.expectedFine.Equal(result.Fine), "expected %s, got %s", tc.expectedFine, result.Fine)
			assert.Equal(t, tc.expectedFinal, result.Final)
		})
	}
}

func Test_Project_UnknownLoan(t *testing.T) {
	_, err := currentfineprojection.Project(nil, currentfineprojection.BuildQuery(uuid.New(), time.Now()), core.DefaultSettings())

	assert.ErrorIs(t, err, core.ErrNotFound)
}
