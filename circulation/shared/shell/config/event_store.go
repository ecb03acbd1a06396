package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
)

const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

var ErrUnknownDriver = errors.New("unknown postgres driver")

// NewPostgresEventStore connects with the chosen client library and returns the event store
// together with a func that closes the connection.
func NewPostgresEventStore(
	ctx context.Context,
	driver string,
	dsn string,
	options ...postgresengine.Option,
) (*postgresengine.EventStore, func(), error) {

	switch driver {
	case DriverPGX, "":
		pool, err := NewPGXPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return es, pool.Close, nil

	case DriverSQL:
		db, err := PostgresSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	case DriverSQLX:
		db, err := PostgresSQLX(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return es, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
