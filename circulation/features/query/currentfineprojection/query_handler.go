package currentfineprojection

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
)

type QueryHandler struct {
	eventStore       shell.QueriesEvents
	settingsProvider settings.Provider
}

func NewQueryHandler(eventStore shell.QueriesEvents, settingsProvider settings.Provider) QueryHandler {
	return QueryHandler{
		eventStore:       eventStore,
		settingsProvider: settingsProvider,
	}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (FineProjection, error) {
	librarySettings, err := h.settingsProvider.GetSettings(ctx)
	if err != nil {
		return FineProjection{}, err
	}

	history, _, err := shell.QueryHistory(ctx, h.eventStore, BuildEventFilter(query))
	if err != nil {
		return FineProjection{}, err
	}

	return Project(history, query, librarySettings)
}
