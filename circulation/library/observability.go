package library

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/observable"
)

func wrapCommand[C shell.Command](handler shell.CommandHandler[C], obs ObservabilityConfig) (shell.CommandHandler[C], error) {
	var opts []observable.CommandOption[C]

	if obs.MetricsCollector != nil {
		opts = append(opts, observable.WithCommandMetrics[C](obs.MetricsCollector))
	}

	if obs.TracingCollector != nil {
		opts = append(opts, observable.WithCommandTracing[C](obs.TracingCollector))
	}

	if obs.ContextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](obs.ContextualLogger))
	}

	if obs.Logger != nil {
		opts = append(opts, observable.WithCommandLogging[C](obs.Logger))
	}

	wrapper, err := observable.NewCommandWrapper[C](handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func wrapQuery[Q shell.Query, R any](handler shell.QueryHandler[Q, R], obs ObservabilityConfig) (shell.QueryHandler[Q, R], error) {
	var opts []observable.QueryOption[Q, R]

	if obs.MetricsCollector != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](obs.MetricsCollector))
	}

	if obs.TracingCollector != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](obs.TracingCollector))
	}

	if obs.ContextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger))
	}

	if obs.Logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](obs.Logger))
	}

	wrapper, err := observable.NewQueryWrapper[Q, R](handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}
