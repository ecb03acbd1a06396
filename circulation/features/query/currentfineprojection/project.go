package currentfineprojection

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Project fails with NotFound for an unknown loan.
func Project(history core.DomainEvents, query Query, settings core.Settings) (FineProjection, error) {
	state, err := core.ProjectCirculationState(history)
	if err != nil {
		return FineProjection{}, err
	}

	loan, found := state.Loan(query.LoanID.String())
	if !found {
		return FineProjection{}, core.NewError(core.KindNotFound, "loan "+query.LoanID.String()+" does not exist")
	}

	return FineProjection{
		LoanID:   loan.LoanID,
		PatronID: loan.PatronID,
		State:    loan.State,
		DueDate:  loan.DueDate,
		AsOf:     query.AsOf,
		Fine:     loan.FineAt(query.AsOf, settings.FinePerDay),
		Final:    !loan.IsOpen(),
	}, nil
}

func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanEventTypes()...).
		AndAnyPredicateOf(eventstore.P("LoanID", query.LoanID.String())).
		Finalize()
}
