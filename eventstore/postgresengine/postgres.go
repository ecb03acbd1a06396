package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine/internal/adapters"
)

var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrQueryingEventsFailed = errors.New("querying events failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrAppendingEventsFailed = errors.New("appending events failed")

const (
	defaultEventTableName = "events"
	dialectPostgres       = "postgres"

	colSequenceNumber = "sequence_number"
	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"

	cteContext    = "context"
	cteVals       = "vals"
	aliasMaxSeq   = "max_seq"
	castText      = "?::text"
	castTimestamp = "?::timestamp with time zone"
	castJsonb     = "?::jsonb"
	containsJsonb = "payload @> ?::jsonb"
)

type sqlQueryString = string

// EventStore implements the eventstore contract on a Postgres events table.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB expects a sql.DB opened with the lib/pq ("postgres") or pgx ("pgx") driver.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the events matching the filter in sequence order together with the
// highest sequence number among them, which must be handed to Append.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := es.startSpan(ctx, operationQuery, nil)
	start := time.Now()

	sqlQuery, err := es.buildSelectQuery(filter)
	if err != nil {
		es.fail(ctx, span, operationQuery, errorTypeBuildQuery, err)
		return nil, 0, err
	}

	rows, err := es.db.Query(ctx, sqlQuery)
	es.logSQL(ctx, operationQuery, sqlQuery, time.Since(start))
	if err != nil {
		es.fail(ctx, span, operationQuery, errorTypeDatabase, err, logAttrQuery, sqlQuery)
		return nil, 0, errors.Join(ErrQueryingEventsFailed, err)
	}
	defer es.closeRows(ctx, rows)

	events, maxSequenceNumber, err := es.scanRows(rows)
	if err != nil {
		es.fail(ctx, span, operationQuery, errorTypeScan, err)
		return nil, 0, err
	}

	duration := time.Since(start)
	es.recordDuration(metricQueryDuration, duration, operationQuery, statusSuccess)
	es.finishSpan(span, statusSuccess, map[string]string{
		spanAttrEventCount:  fmt.Sprintf("%d", len(events)),
		spanAttrMaxSequence: fmt.Sprintf("%d", maxSequenceNumber),
	})
	es.logInfo(ctx, logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, toMilliseconds(duration))

	return events, maxSequenceNumber, nil
}

func (es *EventStore) scanRows(rows adapters.DBRows) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error) {
	events := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	var (
		eventType      string
		occurredAt     time.Time
		payload        []byte
		metadata       []byte
		sequenceNumber eventstore.MaxSequenceNumberUint
	)

	for rows.Next() {
		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); err != nil {
			return nil, 0, errors.Join(ErrScanningDBRowFailed, err)
		}

		event, err := eventstore.BuildStorableEvent(eventType, occurredAt, payload, metadata)
		if err != nil {
			return nil, 0, errors.Join(ErrScanningDBRowFailed, err)
		}

		events = append(events, event)
		maxSequenceNumber = sequenceNumber
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.Join(ErrScanningDBRowFailed, err)
	}

	return events, maxSequenceNumber, nil
}

// Append inserts all events atomically if no event matching filter was appended after
// expectedMaxSequenceNumber; otherwise it returns eventstore.ErrConcurrencyConflict.
//
// The conditional insert runs in a SERIALIZABLE transaction, two appends with
// overlapping filters can never both commit.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	if len(storableEvents) == 0 {
		return eventstore.ErrEmptyEventsToAppend
	}

	ctx, span := es.startSpan(ctx, operationAppend, map[string]string{
		spanAttrEventCount:  fmt.Sprintf("%d", len(storableEvents)),
		spanAttrMaxSequence: fmt.Sprintf("%d", expectedMaxSequenceNumber),
	})
	start := time.Now()

	sqlQuery, err := es.buildInsertQuery(storableEvents, filter, expectedMaxSequenceNumber)
	if err != nil {
		es.fail(ctx, span, operationAppend, errorTypeBuildQuery, err)
		return err
	}

	result, err := es.db.ExecSerializable(ctx, sqlQuery)
	es.logSQL(ctx, operationAppend, sqlQuery, time.Since(start))
	if err != nil {
		if adapters.IsSerializationFailure(err) {
			es.conflict(ctx, span, len(storableEvents), expectedMaxSequenceNumber)
			return eventstore.ErrConcurrencyConflict
		}

		es.fail(ctx, span, operationAppend, errorTypeDatabase, err, logAttrQuery, sqlQuery)
		return errors.Join(ErrAppendingEventsFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		es.fail(ctx, span, operationAppend, errorTypeRowsAffected, err)
		return errors.Join(ErrAppendingEventsFailed, err)
	}

	if rowsAffected < int64(len(storableEvents)) {
		es.conflict(ctx, span, len(storableEvents), expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	duration := time.Since(start)
	es.recordDuration(metricAppendDuration, duration, operationAppend, statusSuccess)
	es.finishSpan(span, statusSuccess, nil)
	es.logInfo(ctx, logMsgEventsAppended,
		logAttrEventCount, len(storableEvents),
		logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	whereClause, err := buildWhereClause(filter)
	if err != nil {
		return "", err
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Where(whereClause).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildInsertQuery renders
//
//	WITH context AS (SELECT MAX(sequence_number) AS max_seq FROM events WHERE <filter>),
//	     vals AS (SELECT ... UNION ALL SELECT ...)
//	INSERT INTO events (...) SELECT vals.* FROM context, vals WHERE COALESCE(max_seq, 0) = <expected>
func (es *EventStore) buildInsertQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	whereClause, err := buildWhereClause(filter)
	if err != nil {
		return "", err
	}

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(whereClause)

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		eventStmt := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = eventStmt
			continue
		}

		valuesStmt = valuesStmt.UnionAll(eventStmt)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.I(cteVals+"."+colEventType),
					goqu.I(cteVals+"."+colOccurredAt),
					goqu.I(cteVals+"."+colPayload),
					goqu.I(cteVals+"."+colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, err := insertStmt.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// buildWhereClause ORs the filter items. Within an item the event types are ORed and
// combined by AND with the predicates, which are ORed or ANDed depending on the item.
func buildWhereClause(filter eventstore.Filter) (exp.ExpressionList, error) {
	itemExpressions := make([]goqu.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]goqu.Expression, 0, len(item.EventTypes()))
		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.C(colEventType).Eq(eventType))
		}

		predicateExpressions := make([]goqu.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			containment, err := jsoniter.ConfigFastest.MarshalToString(map[string]string{predicate.Key(): predicate.Val()})
			if err != nil {
				return nil, errors.Join(ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(predicateExpressions, goqu.L(containsJsonb, containment))
		}

		predicates := goqu.Or(predicateExpressions...)
		if item.AllPredicatesMustMatch() {
			predicates = goqu.And(predicateExpressions...)
		}

		itemExpressions = append(itemExpressions, goqu.And(goqu.Or(eventTypeExpressions...), predicates))
	}

	return goqu.Or(itemExpressions...), nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		es.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}
