package library

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/changeitemvisibility"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/collectfine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/issueloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/registeritem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/renewloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reportdamaged"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reportlost"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/reserveitem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/updatelostdamagedstatus"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/activeloansforpatron"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/currentfineprojection"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/itemavailability"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/reservationsforitem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/settings"
)

// ObservabilityConfig holds the optional collectors every handler is wrapped with.
// Nil members are skipped.
type ObservabilityConfig struct {
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

type Service struct {
	settingsProvider settings.Provider
	clock            func() time.Time

	registerItem            shell.CommandHandler[registeritem.Command]
	changeItemVisibility    shell.CommandHandler[changeitemvisibility.Command]
	issueLoan               shell.CommandHandler[issueloan.Command]
	returnLoan              shell.CommandHandler[returnloan.Command]
	renewLoan               shell.CommandHandler[renewloan.Command]
	collectFine             shell.CommandHandler[collectfine.Command]
	reserveItem             shell.CommandHandler[reserveitem.Command]
	cancelReservation       shell.CommandHandler[cancelreservation.Command]
	reportLost              shell.CommandHandler[reportlost.Command]
	reportDamaged           shell.CommandHandler[reportdamaged.Command]
	updateLostDamagedStatus shell.CommandHandler[updatelostdamagedstatus.Command]

	activeLoansForPatron  shell.QueryHandler[activeloansforpatron.Query, activeloansforpatron.ActiveLoans]
	overdueLoans          shell.QueryHandler[overdueloans.Query, overdueloans.OverdueLoans]
	currentFineProjection shell.QueryHandler[currentfineprojection.Query, currentfineprojection.FineProjection]
	itemAvailability      shell.QueryHandler[itemavailability.Query, itemavailability.ItemAvailability]
	reservationsForItem   shell.QueryHandler[reservationsforitem.Query, reservationsforitem.Reservations]
}

type serviceConfig struct {
	observability ObservabilityConfig
	retryOptions  []shell.RetryOption
	clock         func() time.Time
}

type Option func(*serviceConfig)

func WithObservability(observability ObservabilityConfig) Option {
	return func(c *serviceConfig) {
		c.observability = observability
	}
}

// WithRetryOptions configures the conflict retry of every command handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(c *serviceConfig) {
		c.retryOptions = opts
	}
}

// WithClock replaces time.Now as the source of OccurredAt and of the "now" of queries.
func WithClock(clock func() time.Time) Option {
	return func(c *serviceConfig) {
		c.clock = clock
	}
}

func NewService(eventStore shell.EventStore, settingsProvider settings.Provider, opts ...Option) (*Service, error) {
	cfg := serviceConfig{clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	obs := cfg.observability
	retry := cfg.retryOptions
	s := &Service{
		settingsProvider: settingsProvider,
		clock:            cfg.clock,
	}

	var err error

	if s.registerItem, err = wrapCommand[registeritem.Command](
		registeritem.NewCommandHandler(eventStore, registeritem.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.changeItemVisibility, err = wrapCommand[changeitemvisibility.Command](
		changeitemvisibility.NewCommandHandler(eventStore, changeitemvisibility.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.issueLoan, err = wrapCommand[issueloan.Command](
		issueloan.NewCommandHandler(eventStore, settingsProvider, issueloan.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.returnLoan, err = wrapCommand[returnloan.Command](
		returnloan.NewCommandHandler(eventStore, settingsProvider, returnloan.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.renewLoan, err = wrapCommand[renewloan.Command](
		renewloan.NewCommandHandler(eventStore, settingsProvider, renewloan.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.collectFine, err = wrapCommand[collectfine.Command](
		collectfine.NewCommandHandler(eventStore, collectfine.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.reserveItem, err = wrapCommand[reserveitem.Command](
		reserveitem.NewCommandHandler(eventStore, reserveitem.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.cancelReservation, err = wrapCommand[cancelreservation.Command](
		cancelreservation.NewCommandHandler(eventStore, cancelreservation.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.reportLost, err = wrapCommand[reportlost.Command](
		reportlost.NewCommandHandler(eventStore, reportlost.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.reportDamaged, err = wrapCommand[reportdamaged.Command](
		reportdamaged.NewCommandHandler(eventStore, reportdamaged.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.updateLostDamagedStatus, err = wrapCommand[updatelostdamagedstatus.Command](
		updatelostdamagedstatus.NewCommandHandler(eventStore, updatelostdamagedstatus.WithRetryOptions(retry...)), obs,
	); err != nil {
		return nil, err
	}

	if s.activeLoansForPatron, err = wrapQuery[activeloansforpatron.Query, activeloansforpatron.ActiveLoans](
		activeloansforpatron.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if s.overdueLoans, err = wrapQuery[overdueloans.Query, overdueloans.OverdueLoans](
		overdueloans.NewQueryHandler(eventStore, settingsProvider), obs,
	); err != nil {
		return nil, err
	}

	if s.currentFineProjection, err = wrapQuery[currentfineprojection.Query, currentfineprojection.FineProjection](
		currentfineprojection.NewQueryHandler(eventStore, settingsProvider), obs,
	); err != nil {
		return nil, err
	}

	if s.itemAvailability, err = wrapQuery[itemavailability.Query, itemavailability.ItemAvailability](
		itemavailability.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if s.reservationsForItem, err = wrapQuery[reservationsforitem.Query, reservationsforitem.Reservations](
		reservationsforitem.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	return s, nil
}
