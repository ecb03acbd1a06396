// Package postgresengine implements the eventstore contract on PostgreSQL.
//
// Events live in a single table with a jsonb payload. Filters are rendered with goqu into
// jsonb containment checks (payload @> '{"ItemID": "..."}'), which the GIN index serves.
// Append renders a CTE that inserts the new events only if the highest sequence number
// matching the filter is still the one the caller queried, and runs it in a SERIALIZABLE
// transaction. Serialization failures are reported as eventstore.ErrConcurrencyConflict.
//
// Three connection types are supported: pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB.
//
//	pool, _ := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig(dsn))
//	store, _ := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithLogger(slog.Default()))
//	_ = store.Migrate(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvents...)
package postgresengine
