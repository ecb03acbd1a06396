package core_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_CirculationError_MatchesKindSentinels(t *testing.T) {
	err := fmt.Errorf("issue loan: %w", core.NewError(core.KindOutOfStock, "no copy of item x is available"))

	assert.ErrorIs(t, err, core.ErrOutOfStock)
	assert.NotErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "issue loan: OutOfStock: no copy of item x is available", err.Error())

	kind, ok := core.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, core.KindOutOfStock, kind)
}

func Test_KindOf_NonCirculationError(t *testing.T) {
	_, ok := core.KindOf(errors.New("boom"))

	assert.False(t, ok)
}

func Test_ErrorKind_IsInternal(t *testing.T) {
	assert.True(t, core.KindOverRelease.IsInternal())
	assert.True(t, core.KindInvariantViolation.IsInternal())
	assert.False(t, core.KindOutOfStock.IsInternal())
}

func Test_RejectionOrAbort(t *testing.T) {
	subject := core.RejectionSubject{ItemID: "i-1"}
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("business kind is recorded", func(t *testing.T) {
		result := core.RejectionOrAbort(core.ReportingItemLostFailedEventType, subject, core.NewError(core.KindOutOfStock, "shelf empty"), now)

		assert.Equal(t, "error", result.Outcome)
		rejected, ok := result.Events[0].(core.CirculationRequestRejected)
		assert.True(t, ok)
		assert.Equal(t, core.KindOutOfStock, rejected.ErrorKind)
		assert.Equal(t, "shelf empty", rejected.FailureInfo)
	})

	t.Run("internal kind aborts", func(t *testing.T) {
		result := core.RejectionOrAbort(core.ReturningLoanFailedEventType, subject, core.NewError(core.KindOverRelease, "x"), now)

		assert.True(t, result.IsAborted())
		assert.False(t, result.HasEventsToAppend())
		assert.ErrorIs(t, result.HasError(), core.ErrOverRelease)
	})

	t.Run("untyped error aborts", func(t *testing.T) {
		result := core.RejectionOrAbort(core.ReturningLoanFailedEventType, subject, errors.New("boom"), now)

		assert.True(t, result.IsAborted())
	})
}
