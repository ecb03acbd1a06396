package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_ItemLedger_ReserveOneCopy(t *testing.T) {
	t.Run("takes a copy off the shelf", func(t *testing.T) {
		ledger := givenLedger(2, 2)

		require.NoError(t, ledger.ReserveOneCopy())

		assert.Equal(t, 1, ledger.AvailableCopies)
		assert.Equal(t, 2, ledger.TotalCopies)
	})

	t.Run("fails with OutOfStock on an empty shelf", func(t *testing.T) {
		ledger := givenLedger(2, 0)

		err := ledger.ReserveOneCopy()

		assert.ErrorIs(t, err, core.ErrOutOfStock)
		assert.Equal(t, 0, ledger.AvailableCopies)
	})

	t.Run("fails with NotFound for an unknown item", func(t *testing.T) {
		ledger := core.ItemLedger{ItemID: "unknown"}

		err := ledger.ReserveOneCopy()

		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func Test_ItemLedger_ReleaseOneCopy(t *testing.T) {
	t.Run("puts a copy back", func(t *testing.T) {
		ledger := givenLedger(2, 1)

		require.NoError(t, ledger.ReleaseOneCopy())

		assert.Equal(t, 2, ledger.AvailableCopies)
	})

	t.Run("fails with OverRelease when all copies are available", func(t *testing.T) {
		ledger := givenLedger(2, 2)

		err := ledger.ReleaseOneCopy()

		assert.ErrorIs(t, err, core.ErrOverRelease)
		assert.Equal(t, 2, ledger.AvailableCopies)
	})
}

func Test_ItemLedger_AdjustCapacity(t *testing.T) {
	tests := []struct {
		name              string
		deltaTotal        int
		deltaAvailable    int
		expectedErr       error
		expectedTotal     int
		expectedAvailable int
	}{
		{name: "write off a withdrawn copy", deltaTotal: -1, deltaAvailable: 0, expectedTotal: 2, expectedAvailable: 1},
		{name: "write off a shelved copy", deltaTotal: -1, deltaAvailable: -1, expectedTotal: 2, expectedAvailable: 0},
		{name: "add a copy", deltaTotal: 1, deltaAvailable: 1, expectedTotal: 4, expectedAvailable: 2},
		{name: "available above total", deltaTotal: 0, deltaAvailable: 3, expectedErr: core.ErrInvariantViolation, expectedTotal: 3, expectedAvailable: 1},
		{name: "negative available", deltaTotal: 0, deltaAvailable: -2, expectedErr: core.ErrInvariantViolation, expectedTotal: 3, expectedAvailable: 1},
		{name: "total below available", deltaTotal: -3, deltaAvailable: 0, expectedErr: core.ErrInvariantViolation, expectedTotal: 3, expectedAvailable: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := givenLedger(3, 1)

			err := ledger.AdjustCapacity(tt.deltaTotal, tt.deltaAvailable)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedTotal, ledger.TotalCopies)
			assert.Equal(t, tt.expectedAvailable, ledger.AvailableCopies)
		})
	}
}

func Test_ItemLedger_ApplyEffect_WriteOffOfCirculatingCopyNeedsShelvedCopy(t *testing.T) {
	ledger := givenLedger(1, 0)

	err := ledger.ApplyEffect(core.LedgerEffectWriteOffCopy, false)

	assert.ErrorIs(t, err, core.ErrOutOfStock)
	assert.Equal(t, 1, ledger.TotalCopies)
}

func givenLedger(total, available int) core.ItemLedger {
	return core.ItemLedger{
		ItemID:          "item-1",
		Exists:          true,
		Visible:         true,
		TotalCopies:     total,
		AvailableCopies: available,
	}
}
