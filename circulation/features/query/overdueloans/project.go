package overdueloans

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project
//
//	GIVEN: all loan events
//	THEN: the open loans whose due date lies before AsOf, most overdue first
//	EXCLUDES: returned loans and loans that are due later
func Project(history core.DomainEvents, query Query, settings core.Settings) (OverdueLoans, error) {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return OverdueLoans{}, err
	}

	overdue := make([]OverdueLoan, 0)

	for _, loan := range state.Loans() {
		if !loan.IsOverdueAt(query.AsOf) {
			continue
		}

		overdue = append(overdue, OverdueLoan{
			LoanID:      loan.LoanID,
			ItemID:      loan.ItemID,
			PatronID:    loan.PatronID,
			DueDate:     loan.DueDate,
			DaysOverdue: int(query.AsOf.Sub(loan.DueDate) / (24 * time.Hour)),
			AccruedFine: loan.FineAt(query.AsOf, settings.FinePerDay),
		})
	}

	slices.SortStableFunc(overdue, func(a, b OverdueLoan) int {
		return a.DueDate.Compare(b.DueDate)
	})

	return OverdueLoans{
		AsOf:  query.AsOf,
		Loans: overdue,
		Count: len(overdue),
	}, nil
}

func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanEventTypes()...).
		Finalize()
}
