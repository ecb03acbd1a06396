package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is the part of an event store engine the handlers need. Both the Postgres and the
// in-memory engine implement it.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvents ...eventstore.StorableEvent,
	) error
}

type Command interface {
	CommandType() string
}

type Query interface {
	QueryType() string
}

// CommandHandler is implemented by the feature handlers and by observable.CommandWrapper.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
