package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	LoanPeriodDaysKey = "circulation.loan_period_days"
	FinePerDayKey     = "circulation.fine_per_day"
	BorrowingLimitKey = "circulation.borrowing_limit"
)

var envNames = map[string]string{
	LoanPeriodDaysKey: "CIRCULATION_LOAN_PERIOD_DAYS",
	FinePerDayKey:     "CIRCULATION_FINE_PER_DAY",
	BorrowingLimitKey: "CIRCULATION_BORROWING_LIMIT",
}

type Provider interface {
	GetSettings(ctx context.Context) (core.Settings, error)
}

// StaticProvider always returns the same settings. Zero-valued Settings mean the defaults.
type StaticProvider struct {
	Settings core.Settings
}

func NewStaticProvider(settings core.Settings) StaticProvider {
	return StaticProvider{Settings: settings}
}

func (p StaticProvider) GetSettings(_ context.Context) (core.Settings, error) {
	settings := p.Settings.WithDefaults()

	if p.Settings.LoanPeriodDays == 0 && p.Settings.BorrowingLimit == 0 && p.Settings.FinePerDay.IsZero() {
		settings = core.DefaultSettings()
	}

	return settings, settings.Validate()
}

// ViperProvider reads the settings from viper on every call. Env vars win over the config
// file, which wins over the defaults. The caller owns v and must not write to it concurrently.
type ViperProvider struct {
	v *viper.Viper
}

// NewViperProvider registers the defaults and the CIRCULATION_* env bindings on v.
func NewViperProvider(v *viper.Viper) *ViperProvider {
	defaults := core.DefaultSettings()

	v.SetDefault(LoanPeriodDaysKey, defaults.LoanPeriodDays)
	v.SetDefault(FinePerDayKey, defaults.FinePerDay.String())
	v.SetDefault(BorrowingLimitKey, defaults.BorrowingLimit)

	for key, envName := range envNames {
		_ = v.BindEnv(key, envName) // only fails without a key
	}

	return &ViperProvider{v: v}
}

func (p *ViperProvider) GetSettings(_ context.Context) (core.Settings, error) {
	return readSettings(p.v)
}

// FileProvider serves a validated snapshot of a watched YAML settings file. Only the
// watcher goroutine touches its viper instance after construction.
type FileProvider struct {
	mu       sync.RWMutex
	settings core.Settings
	onReload func(core.Settings, error)
}

type FileProviderOption func(*FileProvider)

// WithReloadHook is called after every reload attempt, with the error of a rejected file.
func WithReloadHook(hook func(core.Settings, error)) FileProviderOption {
	return func(p *FileProvider) {
		p.onReload = hook
	}
}

// NewViperProviderFromFile loads a YAML settings file and watches it for changes.
// A rewrite that does not parse or validate keeps the previous settings.
func NewViperProviderFromFile(path string, options ...FileProviderOption) (*FileProvider, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	NewViperProvider(v)

	settings, err := readSettings(v)
	if err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}

	p := &FileProvider{settings: settings}
	for _, option := range options {
		option(p)
	}

	v.OnConfigChange(func(fsnotify.Event) {
		p.reload(v)
	})
	v.WatchConfig()

	return p, nil
}

func (p *FileProvider) GetSettings(_ context.Context) (core.Settings, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.settings, nil
}

func (p *FileProvider) reload(v *viper.Viper) {
	settings, err := readSettings(v)

	if err == nil {
		p.mu.Lock()
		p.settings = settings
		p.mu.Unlock()
	}

	if p.onReload != nil {
		p.onReload(settings, err)
	}
}

func readSettings(v *viper.Viper) (core.Settings, error) {
	finePerDay, err := decimal.NewFromString(v.GetString(FinePerDayKey))
	if err != nil {
		return core.Settings{}, core.NewError(core.KindInvalidArgument, "fine per day is not a decimal: "+err.Error())
	}

	settings := core.Settings{
		LoanPeriodDays: v.GetInt(LoanPeriodDaysKey),
		FinePerDay:     finePerDay,
		BorrowingLimit: v.GetInt(BorrowingLimitKey),
	}

	if err = settings.Validate(); err != nil {
		return core.Settings{}, err
	}

	return settings, nil
}
