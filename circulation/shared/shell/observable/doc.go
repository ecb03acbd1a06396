// Package observable wraps command and query handlers with metrics, tracing and logging.
//
// The wrappers are applied at wiring time, the handlers themselves stay free of observability:
//
//	coreHandler := issueloan.NewCommandHandler(eventStore)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[issueloan.Command](metricsCollector),
//		observable.WithCommandTracing[issueloan.Command](tracingCollector),
//		observable.WithCommandContextualLogging[issueloan.Command](logger),
//	)
//
// Business rejections are reported with status "rejected" and logged at warn level. Internal
// bookkeeping errors (OverRelease, InvariantViolation) are reported with status "error" and
// logged at error level.
package observable
