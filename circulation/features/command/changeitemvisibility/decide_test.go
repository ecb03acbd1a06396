package changeitemvisibility_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/changeitemvisibility"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Decide(t *testing.T) {
	itemID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name            string
		history         core.DomainEvents
		visible         bool
		expectedOutcome string
	}{
		{
			name:            "hide a visible item",
			history:         core.DomainEvents{core.BuildItemRegistered(itemID, "Dune", 1, true, now)},
			visible:         false,
			expectedOutcome: "success",
		},
		{
			name: "show a hidden item again",
			history: core.DomainEvents{
				core.BuildItemRegistered(itemID, "Dune", 1, true, now),
				core.BuildItemVisibilityChanged(itemID, false, now),
			},
			visible:         true,
			expectedOutcome: "success",
		},
		{
			name:            "already visible",
			history:         core.DomainEvents{core.BuildItemRegistered(itemID, "Dune", 1, true, now)},
			visible:         true,
			expectedOutcome: "idempotent",
		},
		{
			name:            "unknown item",
			visible:         false,
			expectedOutcome: "error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := changeitemvisibility.Decide(tc.history, changeitemvisibility.BuildCommand(itemID, tc.visible, now))

			// assert
			require.Equal(t, tc.expectedOutcome, result.Outcome)
			if tc.expectedOutcome == "error" {
				assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
			}
		})
	}
}
