package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
)

func newRootCmd(a *app) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "circulationctl",
		Short: "Run library circulation commands and queries against an event store",
		Long: `circulationctl issues, returns, renews and reserves library items and tracks
lost and damaged copies. All state lives in an append-only event store.

The memory engine keeps events for the lifetime of the process, which suits serve and
loadgen. Use --engine postgres for durable state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.String("engine", engineMemory, "Event store engine: memory or postgres")
	flags.String("dsn", "", "Postgres DSN (env CIRCULATION_POSTGRES_DSN)")
	flags.String("driver", config.DriverPGX, "Postgres client library: pgx, sql or sqlx")
	flags.String("settings", "", "YAML settings file, watched for changes")
	flags.BoolP("verbose", "v", false, "Log at debug level")
	flags.Bool("otel", false, "Export traces, metrics and logs via OTLP gRPC (env CIRCULATION_OTEL_ENABLED)")
	flags.String("otel-endpoint", config.DefaultOTelEndpoint, "OTLP gRPC collector endpoint")

	_ = a.v.BindPFlag(engineKey, flags.Lookup("engine"))
	_ = a.v.BindPFlag(config.PostgresDSNKey, flags.Lookup("dsn"))
	_ = a.v.BindPFlag(config.PostgresDriverKey, flags.Lookup("driver"))
	_ = a.v.BindPFlag(settingsFileKey, flags.Lookup("settings"))
	_ = a.v.BindPFlag(verboseKey, flags.Lookup("verbose"))
	_ = a.v.BindPFlag(config.OTelEnabledKey, flags.Lookup("otel"))
	_ = a.v.BindPFlag(config.OTelEndpointKey, flags.Lookup("otel-endpoint"))

	root.AddCommand(
		newMigrateCmd(a),
		newItemCmd(a),
		newLoanCmd(a),
		newReservationCmd(a),
		newConditionCmd(a),
		newSettingsCmd(a),
		newServeCmd(a),
		newLoadgenCmd(a),
	)

	return root
}

// ok prints a green success line.
func (a *app) ok(format string, args ...any) {
	fmt.Fprintln(a.out, color.GreenString("✓"), fmt.Sprintf(format, args...))
}

func (a *app) field(name string, value any) {
	fmt.Fprintf(a.out, "  %s %v\n", color.CyanString("%-20s", name+":"), value)
}

func (a *app) header(format string, args ...any) {
	fmt.Fprintln(a.out, color.New(color.Bold).Sprintf(format, args...))
}

func uuidArg(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a uuid: %w", name, err)
	}

	return id, nil
}

// timeFlag parses an optional RFC 3339 flag value. Empty means zero.
func timeFlag(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be RFC 3339: %w", name, err)
	}

	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
