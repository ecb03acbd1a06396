package main

import (
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/loadgen"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func newLoadgenCmd(a *app) *cobra.Command {
	cfg := loadgen.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Register items and let concurrent patrons borrow, return, renew and reserve them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := a.circulation(ctx)
			if err != nil {
				return err
			}

			generator, err := loadgen.NewGenerator(svc, cfg)
			if err != nil {
				return err
			}

			stats, err := generator.Run(ctx)
			if err != nil {
				return err
			}

			a.printStats(stats)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Items, "items", cfg.Items, "Number of items to register")
	flags.IntVar(&cfg.CopiesPerItem, "copies", cfg.CopiesPerItem, "Copies per item")
	flags.IntVar(&cfg.Patrons, "patrons", cfg.Patrons, "Number of patrons")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent workers")
	flags.DurationVar(&cfg.Duration, "duration", cfg.Duration, "How long to run")
	flags.IntVar(&cfg.MaxVisits, "max-visits", 0, "Stop after this many patron visits, 0 means unbounded")

	return cmd
}

func (a *app) printStats(stats loadgen.Stats) {
	a.ok("load generation finished")
	a.field("elapsed", stats.Elapsed.Round(time.Millisecond))
	a.field("visits", stats.Visits)
	a.field("operations", stats.Operations)
	a.field("ops/s", int(stats.Throughput()))
	a.field("p50", stats.P50)
	a.field("p99", stats.P99)

	failures := color.GreenString("%d", stats.Failures)
	if stats.Failures > 0 {
		failures = color.RedString("%d", stats.Failures)
	}
	a.field("failures", failures)

	kinds := make([]string, 0, len(stats.Rejections))
	for kind := range stats.Rejections {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		a.field(kind, color.YellowString("%d", stats.Rejections[core.ErrorKind(kind)]))
	}
}
