package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Decide_Success(t *testing.T) {
	// arrange
	itemID, patronID, reservationID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{core.BuildItemReserved(reservationID, itemID, patronID, time.Now())}

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand(itemID, patronID, time.Now()))

	// assert
	require.True(t, result.IsSuccess())
	canceled, ok := result.Events[0].(core.ReservationCanceled)
	require.True(t, ok)
	assert.Equal(t, reservationID.String(), canceled.ReservationID)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	itemID, patronID := uuid.New(), uuid.New()
	now := time.Now()

	testCases := []struct {
		name    string
		history core.DomainEvents
	}{
		{
			name: "no reservation",
		},
		{
			name: "reservation of another patron",
			history: core.DomainEvents{
				core.BuildItemReserved(uuid.New(), itemID, uuid.New(), now),
			},
		},
		{
			name: "reservation canceled before",
			history: core.DomainEvents{
				core.BuildItemReserved(uuid.New(), itemID, patronID, now),
				core.BuildReservationCanceled(uuid.New(), itemID, patronID, now),
			},
		},
		{
			name: "reservation fulfilled",
			history: core.DomainEvents{
				core.BuildItemReserved(uuid.New(), itemID, patronID, now),
				core.BuildReservationFulfilled(uuid.New(), itemID, patronID, uuid.New(), now),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := cancelreservation.Decide(tc.history, cancelreservation.BuildCommand(itemID, patronID, now))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
			assert.Equal(t, core.CancelingReservationFailedEventType, result.Events[0].IsEventType())
		})
	}
}
