package postgresengine_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
)

const postgresDSNEnv = "CIRCULATION_TEST_POSTGRES_DSN"

func Test_PostgresEventStore_Integration(t *testing.T) {
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", postgresDSNEnv)
	}

	factories := map[string]func(t *testing.T, table string) *postgresengine.EventStore{
		"pgx": func(t *testing.T, table string) *postgresengine.EventStore {
			pool, err := pgxpool.New(t.Context(), dsn)
			require.NoError(t, err)
			t.Cleanup(pool.Close)

			es, err := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithTableName(table))
			require.NoError(t, err)

			return es
		},
		"sql": func(t *testing.T, table string) *postgresengine.EventStore {
			db, err := sql.Open("postgres", dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			es, err := postgresengine.NewEventStoreFromSQLDB(db, postgresengine.WithTableName(table))
			require.NoError(t, err)

			return es
		},
		"sqlx": func(t *testing.T, table string) *postgresengine.EventStore {
			db, err := sqlx.Connect("postgres", dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			es, err := postgresengine.NewEventStoreFromSQLX(db, postgresengine.WithTableName(table))
			require.NoError(t, err)

			return es
		},
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			// arrange
			ctx := t.Context()
			table := givenUniqueTable(t, dsn)
			es := factory(t, table)
			require.NoError(t, es.Migrate(ctx))

			itemID := uuid.NewString()
			filter := integrationItemFilter(itemID)

			// act
			_, maxSeq, err := es.Query(ctx, filter)
			require.NoError(t, err)
			firstErr := es.Append(ctx, filter, maxSeq, givenIntegrationEvent(t, itemID), givenIntegrationEvent(t, itemID))
			staleErr := es.Append(ctx, filter, maxSeq, givenIntegrationEvent(t, itemID))
			otherErr := es.Append(ctx, integrationItemFilter("other"), 0, givenIntegrationEvent(t, "other"))
			events, newMaxSeq, queryErr := es.Query(ctx, filter)

			// assert
			assert.NoError(t, firstErr)
			assert.ErrorIs(t, staleErr, eventstore.ErrConcurrencyConflict)
			assert.NoError(t, otherErr)
			require.NoError(t, queryErr)
			assert.Len(t, events, 2)
			assert.Greater(t, newMaxSeq, maxSeq)
			assert.JSONEq(t, `{"ItemID":"`+itemID+`","Copies":1}`, string(events[0].PayloadJSON))
		})
	}
}

func givenUniqueTable(t *testing.T, dsn string) string {
	t.Helper()

	table := fmt.Sprintf("events_it_%d", time.Now().UnixNano())

	t.Cleanup(func() {
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			return
		}
		defer pool.Close()

		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+table)
	})

	return table
}

func integrationItemFilter(itemID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("ItemRegistered").
		AndAnyPredicateOf(eventstore.P("ItemID", itemID)).
		Finalize()
}

func givenIntegrationEvent(t *testing.T, itemID string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata(
		"ItemRegistered",
		time.Now(),
		[]byte(`{"ItemID":"`+itemID+`","Copies":1}`),
	)
	require.NoError(t, err)

	return event
}
