package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// FixedTime is a reference timestamp for tests that need stable dates.
func FixedTime() time.Time {
	return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}
