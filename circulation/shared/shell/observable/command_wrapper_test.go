package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

type testCommand struct{}

func (testCommand) CommandType() string { return "TestCommand" }

type commandHandlerStub struct {
	result shell.HandlerResult
	err    error
}

func (h commandHandlerStub) Handle(_ context.Context, _ testCommand) (shell.HandlerResult, error) {
	return h.result, h.err
}

func Test_CommandWrapper_RecordsOutcomeStatus(t *testing.T) {
	tests := []struct {
		name           string
		result         shell.HandlerResult
		err            error
		expectedStatus string
		expectedMetric string
		expectedLevel  slog.Level
		expectedLogMsg string
	}{
		{
			name:           "success",
			result:         shell.HandlerResult{Outcome: shell.StatusSuccess},
			expectedStatus: shell.StatusSuccess,
			expectedMetric: shell.CommandHandlerCallsMetric,
			expectedLevel:  slog.LevelInfo,
			expectedLogMsg: shell.LogMsgCommandCompleted,
		},
		{
			name:           "idempotent",
			result:         shell.HandlerResult{Outcome: shell.StatusIdempotent},
			expectedStatus: shell.StatusIdempotent,
			expectedMetric: shell.CommandHandlerIdempotentMetric,
			expectedLevel:  slog.LevelInfo,
			expectedLogMsg: shell.LogMsgCommandCompleted,
		},
		{
			name:           "business rejection",
			result:         shell.HandlerResult{Outcome: shell.StatusError},
			err:            core.NewError(core.KindOutOfStock, "no copy left"),
			expectedStatus: shell.StatusRejected,
			expectedMetric: shell.CommandHandlerRejectedMetric,
			expectedLevel:  slog.LevelWarn,
			expectedLogMsg: shell.LogMsgCommandRejected,
		},
		{
			name:           "internal invariant violation",
			result:         shell.HandlerResult{Outcome: shell.StatusError},
			err:            core.NewError(core.KindOverRelease, "available would exceed total"),
			expectedStatus: shell.StatusError,
			expectedMetric: shell.CommandHandlerCallsMetric,
			expectedLevel:  slog.LevelError,
			expectedLogMsg: shell.LogMsgCommandFailed,
		},
		{
			name:           "concurrency conflict",
			result:         shell.HandlerResult{Outcome: shell.StatusError},
			err:            eventstore.ErrConcurrencyConflict,
			expectedStatus: shell.StatusConcurrencyConflict,
			expectedMetric: shell.CommandHandlerConcurrencyConflictMetric,
			expectedLevel:  slog.LevelWarn,
			expectedLogMsg: shell.LogMsgCommandRejected,
		},
		{
			name:           "canceled",
			result:         shell.HandlerResult{Outcome: shell.StatusError},
			err:            context.Canceled,
			expectedStatus: shell.StatusCanceled,
			expectedMetric: shell.CommandHandlerCanceledMetric,
			expectedLevel:  slog.LevelError,
			expectedLogMsg: shell.LogMsgCommandFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			metricsSpy := helper.NewMetricsCollectorSpy()
			tracingSpy := helper.NewTracingCollectorSpy()
			logSpy := helper.NewLogHandlerSpy(false)

			wrapper, err := observable.NewCommandWrapper[testCommand](
				commandHandlerStub{result: tt.result, err: tt.err},
				observable.WithCommandMetrics[testCommand](metricsSpy),
				observable.WithCommandTracing[testCommand](tracingSpy),
				observable.WithCommandContextualLogging[testCommand](slog.New(logSpy)),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), testCommand{})

			// assert
			assert.ErrorIs(t, err, tt.err)
			labels := shell.BuildCommandLabels("TestCommand", tt.expectedStatus)
			assert.True(t, metricsSpy.HasDuration(shell.CommandHandlerDurationMetric, labels))
			assert.True(t, metricsSpy.HasCounter(tt.expectedMetric, labels))
			assert.True(t, logSpy.HasRecord(tt.expectedLevel, tt.expectedLogMsg))

			spans := tracingSpy.FinishedSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, shell.SpanNameCommandHandle, spans[0].Name)
			assert.Equal(t, tt.expectedStatus, spans[0].Status())
		})
	}
}

func Test_CommandWrapper_AddsErrorKindToSpanAndLog(t *testing.T) {
	// arrange
	tracingSpy := helper.NewTracingCollectorSpy()
	logSpy := helper.NewLogHandlerSpy(false)
	wrapper, err := observable.NewCommandWrapper[testCommand](
		commandHandlerStub{err: core.NewError(core.KindBorrowLimitExceeded, "limit 5 reached")},
		observable.WithCommandTracing[testCommand](tracingSpy),
		observable.WithCommandLogging[testCommand](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrBorrowLimitExceeded)
	assert.Equal(t, string(core.KindBorrowLimitExceeded), tracingSpy.FinishedSpans()[0].Attributes()[shell.LogAttrErrorKind])

	kind, found := logSpy.AttrOf(shell.LogMsgCommandRejected, shell.LogAttrErrorKind)
	assert.True(t, found)
	assert.Equal(t, string(core.KindBorrowLimitExceeded), kind)
}

func Test_CommandWrapper_RecordsRetryMetrics(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy()
	wrapper, err := observable.NewCommandWrapper[testCommand](
		commandHandlerStub{
			result: shell.HandlerResult{
				Outcome:          shell.StatusError,
				RetryAttempts:    6,
				TotalRetryDelay:  300 * time.Millisecond,
				LastErrorType:    shell.ErrorTypeConcurrencyConflict,
				RetriesExhausted: true,
			},
			err: eventstore.ErrConcurrencyConflict,
		},
		observable.WithCommandMetrics[testCommand](metricsSpy),
	)
	require.NoError(t, err)

	// act
	_, _ = wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.True(t, metricsSpy.HasCounter(
		shell.CommandHandlerRetriesMetric,
		shell.BuildRetryLabels("TestCommand", 5, shell.ErrorTypeConcurrencyConflict),
	))
	assert.True(t, metricsSpy.HasDuration(shell.CommandHandlerRetryDelayMetric, nil))
	assert.Equal(t, 1, metricsSpy.CounterCount(shell.CommandHandlerMaxRetriesReachedMetric))
}

func Test_CommandWrapper_WorksWithoutObservability(t *testing.T) {
	wrapper, err := observable.NewCommandWrapper[testCommand](
		commandHandlerStub{err: errors.New("boom")},
	)
	require.NoError(t, err)

	_, err = wrapper.Handle(context.Background(), testCommand{})

	assert.EqualError(t, err, "boom")
}
