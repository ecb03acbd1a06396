package registeritem_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registeritem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	itemID := uuid.New()
	command := registeritem.BuildCommand(itemID, "  Dune ", 3, true, time.Now())

	// act
	result := registeritem.Decide(nil, command)

	// assert
	require.True(t, result.IsSuccess())
	registered, ok := result.Events[0].(core.ItemRegistered)
	require.True(t, ok)
	assert.Equal(t, "Dune", registered.Title)
	assert.Equal(t, 3, registered.TotalCopies)
	assert.True(t, registered.Visible)
}

func Test_Decide_Success_WithoutCopies(t *testing.T) {
	result := registeritem.Decide(nil, registeritem.BuildCommand(uuid.New(), "Dune", 0, true, time.Now()))

	require.True(t, result.IsSuccess())
	registered := result.Events[0].(core.ItemRegistered)
	assert.Zero(t, registered.TotalCopies)
}

func Test_Decide_Idempotent_WhenAlreadyRegistered(t *testing.T) {
	itemID := uuid.New()
	history := core.DomainEvents{core.BuildItemRegistered(itemID, "Dune", 3, true, time.Now())}

	result := registeritem.Decide(history, registeritem.BuildCommand(itemID, "Dune", 5, true, time.Now()))

	assert.True(t, result.IsIdempotent())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	testCases := []struct {
		name        string
		title       string
		totalCopies int
	}{
		{name: "empty title", title: " ", totalCopies: 1},
		{name: "negative copies", title: "Dune", totalCopies: -2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := registeritem.BuildCommand(uuid.New(), tc.title, tc.totalCopies, true, time.Now())

			// act
			result := registeritem.Decide(nil, command)

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), core.ErrInvalidArgument)
			rejected, ok := result.Events[0].(core.CirculationRequestRejected)
			require.True(t, ok)
			assert.Equal(t, core.RegisteringItemFailedEventType, rejected.EventType)
		})
	}
}
