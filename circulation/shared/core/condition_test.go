package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func Test_DamageWithdrawsCopy(t *testing.T) {
	assert.False(t, core.DamageWithdrawsCopy(core.DamageLevelMinor, true))
	assert.False(t, core.DamageWithdrawsCopy(core.DamageLevelModerate, true))
	assert.True(t, core.DamageWithdrawsCopy(core.DamageLevelSevere, true))
	assert.True(t, core.DamageWithdrawsCopy(core.DamageLevelMinor, false))
}

func Test_LostDamagedRecord_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name       string
		recordType core.RecordType
		from       core.RecordStatus
		to         core.RecordStatus
		expected   bool
	}{
		{"lost reported to investigating", core.RecordTypeLost, core.RecordStatusReported, core.RecordStatusInvestigating, true},
		{"lost investigating to found", core.RecordTypeLost, core.RecordStatusInvestigating, core.RecordStatusFound, true},
		{"lost reported to replaced", core.RecordTypeLost, core.RecordStatusReported, core.RecordStatusReplaced, true},
		{"lost reported to closed", core.RecordTypeLost, core.RecordStatusReported, core.RecordStatusClosed, true},
		{"lost reported to repaired", core.RecordTypeLost, core.RecordStatusReported, core.RecordStatusRepaired, false},
		{"lost investigating back to reported", core.RecordTypeLost, core.RecordStatusInvestigating, core.RecordStatusReported, false},
		{"damaged reported to repaired", core.RecordTypeDamaged, core.RecordStatusReported, core.RecordStatusRepaired, true},
		{"damaged investigating to irreparable", core.RecordTypeDamaged, core.RecordStatusInvestigating, core.RecordStatusIrreparable, true},
		{"damaged reported to found", core.RecordTypeDamaged, core.RecordStatusReported, core.RecordStatusFound, false},
		{"damaged investigating to investigating", core.RecordTypeDamaged, core.RecordStatusInvestigating, core.RecordStatusInvestigating, false},
		{"terminal found to closed", core.RecordTypeLost, core.RecordStatusFound, core.RecordStatusClosed, false},
		{"terminal repaired to irreparable", core.RecordTypeDamaged, core.RecordStatusRepaired, core.RecordStatusIrreparable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := core.LostDamagedRecord{Type: tt.recordType, Status: tt.from}

			assert.Equal(t, tt.expected, record.CanTransitionTo(tt.to))
		})
	}
}

func Test_LostDamagedRecord_EffectOf(t *testing.T) {
	withdrawn := core.LostDamagedRecord{Type: core.RecordTypeDamaged, Status: core.RecordStatusReported, CopyWithdrawn: true}
	circulating := core.LostDamagedRecord{Type: core.RecordTypeDamaged, Status: core.RecordStatusReported}

	assert.Equal(t, core.LedgerEffectRestoreCopy, withdrawn.EffectOf(core.RecordStatusRepaired))
	assert.Equal(t, core.LedgerEffectRestoreCopy, withdrawn.EffectOf(core.RecordStatusReplaced))
	assert.Equal(t, core.LedgerEffectWriteOffCopy, withdrawn.EffectOf(core.RecordStatusIrreparable))
	assert.Equal(t, core.LedgerEffectWriteOffCopy, withdrawn.EffectOf(core.RecordStatusClosed))
	assert.Equal(t, core.LedgerEffectNone, withdrawn.EffectOf(core.RecordStatusInvestigating))

	assert.Equal(t, core.LedgerEffectNone, circulating.EffectOf(core.RecordStatusRepaired))
	assert.Equal(t, core.LedgerEffectNone, circulating.EffectOf(core.RecordStatusClosed))
	assert.Equal(t, core.LedgerEffectWriteOffCopy, circulating.EffectOf(core.RecordStatusIrreparable))
}

func Test_ParseRecordStatus_And_ParseDamageLevel(t *testing.T) {
	status, err := core.ParseRecordStatus(" repaired ")
	assert.NoError(t, err)
	assert.Equal(t, core.RecordStatusRepaired, status)

	_, err = core.ParseRecordStatus("SHREDDED")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	level, err := core.ParseDamageLevel("Severe")
	assert.NoError(t, err)
	assert.Equal(t, core.DamageLevelSevere, level)

	_, err = core.ParseDamageLevel("catastrophic")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
