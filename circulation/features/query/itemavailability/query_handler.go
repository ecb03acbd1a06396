package itemavailability

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
)

type QueryHandler struct {
	eventStore shell.QueriesEvents
}

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle runs Query -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ItemAvailability, error) {
	history, _, err := shell.QueryHistory(ctx, h.eventStore, BuildEventFilter(query))
	if err != nil {
		return ItemAvailability{}, err
	}

	return Project(history, query)
}
