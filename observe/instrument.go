package observe

// Instrumentation bundles the telemetry components the dispatch sender
// wires around each correlated exchange.
//
// Contract:
//   - Concurrency: all components must be safe for concurrent use.
//   - Ownership: the bundle holds references only; shutdown of providers
//     stays with the Observer that produced them.
type Instrumentation struct {
	Tracer  Tracer
	Metrics Metrics
	Logger  Logger
}

// NopInstrumentation returns a bundle that records nothing. Useful as the
// default when a caller opts out of telemetry.
func NopInstrumentation() Instrumentation {
	return Instrumentation{
		Tracer:  NopTracer(),
		Metrics: NopMetrics(),
		Logger:  NopLogger(),
	}
}

// InstrumentationFromObserver builds a bundle from an Observer. classify
// labels failures for the metrics counter; it may be nil.
func InstrumentationFromObserver(obs Observer, classify NonSuccessClassifier) (Instrumentation, error) {
	metrics, err := NewMetrics(obs.Meter(), classify)
	if err != nil {
		return Instrumentation{}, err
	}

	return Instrumentation{
		Tracer:  NewTracer(obs.Tracer()),
		Metrics: metrics,
		Logger:  obs.Logger(),
	}, nil
}

// WithDefaults returns the bundle with nil components replaced by no-ops,
// so callers can set only what they care about.
func (i Instrumentation) WithDefaults() Instrumentation {
	if i.Tracer == nil {
		i.Tracer = NopTracer()
	}
	if i.Metrics == nil {
		i.Metrics = NopMetrics()
	}
	if i.Logger == nil {
		i.Logger = NopLogger()
	}
	return i
}
