package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "concurrency_conflict"

	errorTypeBuildQuery   = "build_query"
	errorTypeDatabase     = "database"
	errorTypeScan         = "scan"
	errorTypeRowsAffected = "rows_affected"

	spanAttrOperation   = "operation"
	spanAttrEventCount  = "event_count"
	spanAttrMaxSequence = "max_sequence"
	spanAttrErrorType   = "error_type"

	logMsgSQLExecuted         = "eventstore: executed sql for "
	logMsgQueryCompleted      = "eventstore: query completed"
	logMsgEventsAppended      = "eventstore: events appended"
	logMsgConcurrencyConflict = "eventstore: concurrency conflict detected"
	logMsgOperationFailed     = "eventstore: operation failed"
	logMsgCloseRowsFailed     = "eventstore: failed to close database rows"

	logAttrError            = "error"
	logAttrErrorType        = "error_type"
	logAttrOperation        = "operation"
	logAttrQuery            = "query"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedSequence = "expected_sequence"
)

func (es *EventStore) logSQL(ctx context.Context, operation string, sqlQuery string, duration time.Duration) {
	es.log(ctx, levelDebug, logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

func (es *EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	es.log(ctx, levelInfo, msg, args...)
}

func (es *EventStore) logWarn(ctx context.Context, msg string, args ...any) {
	es.log(ctx, levelWarn, msg, args...)
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func (es *EventStore) log(ctx context.Context, lvl level, msg string, args ...any) {
	if es.contextualLogger != nil {
		logContextual(ctx, es.contextualLogger, lvl, msg, args...)
		return
	}

	if es.logger != nil {
		logPlain(es.logger, lvl, msg, args...)
	}
}

func logContextual(ctx context.Context, logger eventstore.ContextualLogger, lvl level, msg string, args ...any) {
	switch lvl {
	case levelDebug:
		logger.DebugContext(ctx, msg, args...)
	case levelInfo:
		logger.InfoContext(ctx, msg, args...)
	case levelWarn:
		logger.WarnContext(ctx, msg, args...)
	default:
		logger.ErrorContext(ctx, msg, args...)
	}
}

func logPlain(logger eventstore.Logger, lvl level, msg string, args ...any) {
	switch lvl {
	case levelDebug:
		logger.Debug(msg, args...)
	case levelInfo:
		logger.Info(msg, args...)
	case levelWarn:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}

// fail logs, counts and traces an infrastructure failure of the given operation.
func (es *EventStore) fail(
	ctx context.Context,
	span eventstore.SpanContext,
	operation string,
	errorType string,
	err error,
	args ...any,
) {

	logArgs := append([]any{logAttrOperation, operation, logAttrErrorType, errorType, logAttrError, err.Error()}, args...)
	es.log(ctx, levelError, logMsgOperationFailed, logArgs...)

	if es.metricsCollector != nil {
		es.metricsCollector.IncrementCounter(metricDatabaseErrors, map[string]string{
			spanAttrOperation: operation,
			spanAttrErrorType: errorType,
		})
	}

	es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func (es *EventStore) conflict(
	ctx context.Context,
	span eventstore.SpanContext,
	eventCount int,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) {

	es.logInfo(ctx, logMsgConcurrencyConflict,
		logAttrEventCount, eventCount,
		logAttrExpectedSequence, expectedMaxSequenceNumber)

	if es.metricsCollector != nil {
		es.metricsCollector.IncrementCounter(metricConcurrencyConflicts, map[string]string{
			spanAttrOperation: operationAppend,
		})
	}

	es.finishSpan(span, statusConflict, nil)
}

func (es *EventStore) recordDuration(metric string, duration time.Duration, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	})
}

func (es *EventStore) startSpan(ctx context.Context, operation string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	spanName := spanNameQuery
	if operation == operationAppend {
		spanName = spanNameAppend
	}

	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs[spanAttrOperation] = operation

	return es.tracingCollector.StartSpan(ctx, spanName, attrs)
}

func (es *EventStore) finishSpan(span eventstore.SpanContext, status string, attrs map[string]string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
