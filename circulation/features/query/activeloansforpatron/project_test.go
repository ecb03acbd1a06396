package activeloansforpatron_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/activeloansforpatron"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Project_ListsOpenLoansInBorrowOrder(t *testing.T) {
	// arrange
	patronID := uuid.New()
	firstLoan, returnedLoan, lastLoan := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildLoanIssued(firstLoan, uuid.New(), patronID, start.AddDate(0, 0, 14), start),
		core.BuildLoanIssued(returnedLoan, uuid.New(), patronID, start.AddDate(0, 0, 15), start.AddDate(0, 0, 1)),
		core.BuildLoanIssued(lastLoan, uuid.New(), patronID, start.AddDate(0, 0, 30), start.AddDate(0, 0, 16)),
		core.BuildLoanReturned(returnedLoan, uuid.New(), patronID, start.AddDate(0, 0, 2), decimal.Zero, start.AddDate(0, 0, 2)),
	}

	// act
	result, err := activeloansforpatron.Project(history, activeloansforpatron.BuildQuery(patronID, start.AddDate(0, 0, 20)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, firstLoan.String(), result.Loans[0].LoanID)
	assert.True(t, result.Loans[0].Overdue)
	assert.Equal(t, lastLoan.String(), result.Loans[1].LoanID)
	assert.False(t, result.Loans[1].Overdue)
}

func Test_Project_EmptyForPatronWithoutLoans(t *testing.T) {
	patronID := uuid.New()

	result, err := activeloansforpatron.Project(nil, activeloansforpatron.BuildQuery(patronID, time.Now()))

	require.NoError(t, err)
	assert.Equal(t, patronID.String(), result.PatronID)
	assert.Empty(t, result.Loans)
}
