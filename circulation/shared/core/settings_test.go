package core_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_Settings_Defaults(t *testing.T) {
	settings := core.Settings{}.WithDefaults()

	assert.Equal(t, 14, settings.LoanPeriodDays)
	assert.Equal(t, 5, settings.BorrowingLimit)
	assert.NoError(t, core.DefaultSettings().Validate())
	assert.True(t, decimal.NewFromInt(1).Equal(core.DefaultSettings().FinePerDay))
}

func Test_Settings_Validate(t *testing.T) {
	settings := core.Settings{LoanPeriodDays: 0, BorrowingLimit: -1, FinePerDay: decimal.NewFromInt(-1)}

	err := settings.Validate()

	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.ErrorContains(t, err, "loan period")
	assert.ErrorContains(t, err, "borrowing limit")
	assert.ErrorContains(t, err, "fine per day")
}
