package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/atopile/pathgraph/pkg/graphinterfaces"
)

// PathFinderObserver implements graphinterfaces.PathObserver, publishing a
// PathFinder run's per-filter outcomes as a Prometheus counter vector keyed
// by filter name and transition, plus an optional duration histogram.
type PathFinderObserver struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	runs        *prometheus.CounterVec
}

// NewPathFinderObserver registers the PathFinder metrics with registry under
// serviceName and returns an observer ready to pass to a PathFinder. The
// duration histogram is always registered, but a filter duration is only
// observed when it is non-zero, which happens only with
// EngineConfig.IndividualMeasurement on.
func NewPathFinderObserver(registry *MetricsRegistry, serviceName string) (*PathFinderObserver, error) {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_filter_transitions_total",
		Help: "PathFinder filter executions by filter name and outcome (in, out, weak_to_strong).",
	}, []string{"filter", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathfinder_filter_duration_seconds",
		Help:    "Wall-clock time spent per filter invocation, when individual measurement is enabled.",
		Buckets: prometheus.ExponentialBuckets(0.0000001, 4, 10),
	}, []string{"filter"})

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_runs_total",
		Help: "FindPaths calls completed, labeled by whether they produced any complete path.",
	}, []string{"result"})

	if err := registry.RegisterCounterVec(serviceName, "pathfinder_filter_transitions_total", transitions); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec(serviceName, "pathfinder_filter_duration_seconds", duration); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(serviceName, "pathfinder_runs_total", runs); err != nil {
		return nil, err
	}

	return &PathFinderObserver{transitions: transitions, duration: duration, runs: runs}, nil
}

// FilterExecuted implements graphinterfaces.PathObserver.
func (o *PathFinderObserver) FilterExecuted(filterName string, passed bool, discovery bool, elapsed time.Duration) {
	outcome := "out"
	if passed {
		outcome = "in"
	}
	o.transitions.WithLabelValues(filterName, outcome).Inc()
	if elapsed > 0 {
		o.duration.WithLabelValues(filterName).Observe(elapsed.Seconds())
	}
}

// WeakPromoted implements graphinterfaces.PathObserver.
func (o *PathFinderObserver) WeakPromoted(filterName string) {
	o.transitions.WithLabelValues(filterName, "weak_to_strong").Inc()
}

// RunFinished implements graphinterfaces.PathObserver.
func (o *PathFinderObserver) RunFinished(pathsFound int, pathsIncomplete int, elapsed time.Duration) {
	result := "empty"
	if pathsFound > 0 {
		result = "found"
	}
	o.runs.WithLabelValues(result).Inc()
	_ = pathsIncomplete
	_ = elapsed
}

var _ graphinterfaces.PathObserver = (*PathFinderObserver)(nil)
