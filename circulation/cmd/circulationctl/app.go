package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/AntonStoeckl/library-circulation-go/circulation/library"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/promadapter"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
)

const (
	envPrefix = "CIRCULATION"

	engineKey       = "engine"
	settingsFileKey = "settings_file"
	verboseKey      = "verbose"
	listenKey       = "listen"

	engineMemory   = "memory"
	enginePostgres = "postgres"

	metricsNamespace = "circulation"
)

// app holds what the commands share. The service is opened lazily by the first command that needs it.
type app struct {
	v        *viper.Viper
	out      io.Writer
	registry *prometheus.Registry
	metrics  *promadapter.MetricsCollector

	newTelemetry telemetryFactory
	otel         *otelCollectors

	service    *library.Service
	postgres   *postgresengine.EventStore
	closeStore func()
}

func newApp(out io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(engineKey, engineMemory)
	v.SetDefault(config.PostgresDriverKey, config.DriverPGX)

	registry := prometheus.NewRegistry()

	return &app{
		v:          v,
		out:        out,
		registry:   registry,
		metrics:    promadapter.NewMetricsCollector(registry, promadapter.WithNamespace(metricsNamespace)),
		closeStore: func() {},

		newTelemetry: config.NewTelemetry,
	}
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.v.GetBool(verboseKey) {
		level = slog.LevelDebug
	}

	return a.logHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (a *app) settingsProvider() (settings.Provider, error) {
	if path := a.v.GetString(settingsFileKey); path != "" {
		return settings.NewViperProviderFromFile(path, settings.WithReloadHook(a.logSettingsReload))
	}

	return settings.NewViperProvider(a.v), nil
}

func (a *app) logSettingsReload(reloaded core.Settings, err error) {
	if err != nil {
		a.logger().Warn("settings file rejected, keeping previous settings", "error", err)
		return
	}

	a.logger().Info(
		"settings reloaded",
		"loan_period_days", reloaded.LoanPeriodDays,
		"fine_per_day", reloaded.FinePerDay.String(),
		"borrowing_limit", reloaded.BorrowingLimit,
	)
}

// openPostgres connects once and keeps the store for migrate and for the service.
func (a *app) openPostgres(ctx context.Context) (*postgresengine.EventStore, error) {
	if a.postgres != nil {
		return a.postgres, nil
	}

	if err := a.setupTelemetry(ctx); err != nil {
		return nil, err
	}

	options := a.postgresObservabilityOptions()

	if table := a.v.GetString(config.EventsTableKey); table != "" {
		options = append(options, postgresengine.WithTableName(table))
	}

	es, closeFn, err := config.NewPostgresEventStore(
		ctx,
		a.v.GetString(config.PostgresDriverKey),
		config.PostgresDSN(a.v),
		options...,
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	a.postgres = es
	a.closeStore = closeFn

	return es, nil
}

func (a *app) eventStore(ctx context.Context) (shell.EventStore, error) {
	switch engine := a.v.GetString(engineKey); engine {
	case engineMemory:
		return memoryengine.NewEventStore(memoryengine.WithLogger(a.logger())), nil
	case enginePostgres:
		return a.openPostgres(ctx)
	default:
		return nil, fmt.Errorf("unknown engine %q, use %s or %s", engine, engineMemory, enginePostgres)
	}
}

func (a *app) circulation(ctx context.Context) (*library.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	if err := a.setupTelemetry(ctx); err != nil {
		return nil, err
	}

	es, err := a.eventStore(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := a.settingsProvider()
	if err != nil {
		return nil, err
	}

	svc, err := library.NewService(es, provider, library.WithObservability(a.observabilityConfig()))
	if err != nil {
		return nil, err
	}

	a.service = svc

	return svc, nil
}

func (a *app) close() {
	a.closeStore()
	a.shutdownTelemetry()
}
