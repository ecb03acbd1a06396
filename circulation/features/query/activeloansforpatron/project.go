package activeloansforpatron

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project
//
//	GIVEN: the loan events of the patron
//	THEN: the patron's open loans in borrow order
//	EXCLUDES: returned loans
func Project(history core.DomainEvents, query Query) (ActiveLoans, error) {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return ActiveLoans{}, err
	}

	openLoans := state.OpenLoansOfPatron(query.PatronID.String())
	loans := make([]LoanInfo, 0, len(openLoans))

	for _, loan := range openLoans {
		loans = append(loans, LoanInfo{
			LoanID:       loan.LoanID,
			ItemID:       loan.ItemID,
			BorrowedAt:   loan.BorrowedAt,
			DueDate:      loan.DueDate,
			RenewalCount: loan.RenewalCount,
			Overdue:      loan.IsOverdueAt(query.AsOf),
		})
	}

	return ActiveLoans{
		PatronID: query.PatronID.String(),
		Loans:    loans,
		Count:    len(loans),
	}, nil
}

func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanEventTypes()...).
		AndAnyPredicateOf(eventstore.P("PatronID", query.PatronID.String())).
		Finalize()
}
