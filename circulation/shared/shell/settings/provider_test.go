package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
)

func Test_StaticProvider_FallsBackToDefaults(t *testing.T) {
	got, err := settings.NewStaticProvider(core.Settings{}).GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, core.DefaultSettings().LoanPeriodDays, got.LoanPeriodDays)
	assert.Equal(t, core.DefaultSettings().BorrowingLimit, got.BorrowingLimit)
	assert.True(t, core.DefaultSettings().FinePerDay.Equal(got.FinePerDay))
}

func Test_StaticProvider_KeepsExplicitValues(t *testing.T) {
	provider := settings.NewStaticProvider(core.Settings{LoanPeriodDays: 7, FinePerDay: decimal.RequireFromString("0.25"), BorrowingLimit: 2})

	got, err := provider.GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, got.LoanPeriodDays)
	assert.Equal(t, 2, got.BorrowingLimit)
	assert.Equal(t, "0.25", got.FinePerDay.String())
}

func Test_ViperProvider_Defaults(t *testing.T) {
	got, err := settings.NewViperProvider(viper.New()).GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 14, got.LoanPeriodDays)
	assert.Equal(t, 5, got.BorrowingLimit)
	assert.True(t, decimal.NewFromInt(1).Equal(got.FinePerDay))
}

func Test_ViperProvider_ReadsChangesOnEveryCall(t *testing.T) {
	// arrange
	v := viper.New()
	provider := settings.NewViperProvider(v)
	before, err := provider.GetSettings(context.Background())
	require.NoError(t, err)

	// act
	v.Set(settings.BorrowingLimitKey, 1)
	after, err := provider.GetSettings(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, before.BorrowingLimit)
	assert.Equal(t, 1, after.BorrowingLimit)
}

func Test_ViperProvider_ReadsEnvironment(t *testing.T) {
	t.Setenv("CIRCULATION_FINE_PER_DAY", "0.75")

	got, err := settings.NewViperProvider(viper.New()).GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.75", got.FinePerDay.String())
}

func Test_ViperProvider_RejectsInvalidSettings(t *testing.T) {
	v := viper.New()
	provider := settings.NewViperProvider(v)

	v.Set(settings.FinePerDayKey, "cheap")
	_, err := provider.GetSettings(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	v.Set(settings.FinePerDayKey, "1")
	v.Set(settings.LoanPeriodDaysKey, 0)
	_, err = provider.GetSettings(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func Test_WriteFile_IsReadBackByViperProvider(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "circulation.yaml")
	written := core.Settings{LoanPeriodDays: 21, FinePerDay: decimal.RequireFromString("0.5"), BorrowingLimit: 3}

	// act
	require.NoError(t, settings.WriteFile(path, written))
	provider, err := settings.NewViperProviderFromFile(path)
	require.NoError(t, err)
	got, err := provider.GetSettings(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 21, got.LoanPeriodDays)
	assert.Equal(t, 3, got.BorrowingLimit)
	assert.True(t, written.FinePerDay.Equal(got.FinePerDay))
}

func Test_MarshalYAML(t *testing.T) {
	out, err := settings.MarshalYAML(core.DefaultSettings())

	require.NoError(t, err)
	assert.YAMLEq(t, "circulation:\n  loan_period_days: 14\n  fine_per_day: \"1.00\"\n  borrowing_limit: 5\n", string(out))
}

func Test_FileProvider_ConcurrentReadersSeeWholeSnapshotsWhileFileIsRewritten(t *testing.T) {
	// arrange
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "circulation.yaml")
	before := core.Settings{LoanPeriodDays: 14, FinePerDay: decimal.RequireFromString("1"), BorrowingLimit: 5}
	after := core.Settings{LoanPeriodDays: 21, FinePerDay: decimal.RequireFromString("2.5"), BorrowingLimit: 3}
	require.NoError(t, settings.WriteFile(path, before))

	provider, err := settings.NewViperProviderFromFile(path)
	require.NoError(t, err)

	var mixed atomic.Int32
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}

				got, err := provider.GetSettings(ctx)
				if err != nil || !(sameSettings(got, before) || sameSettings(got, after)) {
					mixed.Add(1)
				}
			}
		}()
	}

	// act
	require.NoError(t, settings.WriteFile(path, after))

	// assert
	assert.Eventually(t, func() bool {
		got, err := provider.GetSettings(ctx)
		return err == nil && sameSettings(got, after)
	}, 5*time.Second, 10*time.Millisecond)

	close(stop)
	wg.Wait()
	assert.Zero(t, mixed.Load())
}

func Test_FileProvider_KeepsPreviousSettingsWhenRewriteIsInvalid(t *testing.T) {
	// arrange
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "circulation.yaml")
	require.NoError(t, settings.WriteFile(path, core.DefaultSettings()))

	rejected := make(chan error, 1)
	provider, err := settings.NewViperProviderFromFile(path, settings.WithReloadHook(func(_ core.Settings, err error) {
		if err != nil {
			select {
			case rejected <- err:
			default:
			}
		}
	}))
	require.NoError(t, err)

	// act
	require.NoError(t, os.WriteFile(path, []byte("circulation:\n  loan_period_days: 0\n"), 0o600))

	// assert
	select {
	case err = <-rejected:
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	case <-time.After(5 * time.Second):
		require.Fail(t, "settings file change was not picked up")
	}

	got, err := provider.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, sameSettings(got, core.DefaultSettings()))
}

func Test_NewViperProviderFromFile_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circulation.yaml")
	require.NoError(t, os.WriteFile(path, []byte("circulation:\n  fine_per_day: cheap\n"), 0o600))

	_, err := settings.NewViperProviderFromFile(path)

	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func sameSettings(a, b core.Settings) bool {
	return a.LoanPeriodDays == b.LoanPeriodDays && a.BorrowingLimit == b.BorrowingLimit && a.FinePerDay.Equal(b.FinePerDay)
}
