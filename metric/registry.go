// Package metric wires the pathgraph engine's per-filter Counters to
// Prometheus. Besides pkg/worker, it is the only package in the module that
// imports prometheus/client_golang — the BFS hot loop itself never touches a metrics
// backend, so disabling metrics costs nothing but leaving one observer
// unregistered.
package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/atopile/pathgraph/errors"
)

// MetricsRegistry manages registration and lifecycle of metrics backed by a
// dedicated Prometheus registry, so embedding this module never collides
// with a host's own metric names.
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewMetricsRegistry creates a new, empty metrics registry with the standard
// Go runtime and process collectors attached.
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	r := &MetricsRegistry{
		prometheusRegistry: reg,
		registeredMetrics:  make(map[string]prometheus.Collector),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// RegisterCounter registers a counter under serviceName.metricName.
func (r *MetricsRegistry) RegisterCounter(serviceName, metricName string, c prometheus.Counter) error {
	return r.register(serviceName, metricName, c)
}

// RegisterGauge registers a gauge under serviceName.metricName.
func (r *MetricsRegistry) RegisterGauge(serviceName, metricName string, g prometheus.Gauge) error {
	return r.register(serviceName, metricName, g)
}

// RegisterCounterVec registers a counter vector under serviceName.metricName.
func (r *MetricsRegistry) RegisterCounterVec(serviceName, metricName string, v *prometheus.CounterVec) error {
	return r.register(serviceName, metricName, v)
}

// RegisterHistogramVec registers a histogram vector under serviceName.metricName.
func (r *MetricsRegistry) RegisterHistogramVec(serviceName, metricName string, v *prometheus.HistogramVec) error {
	return r.register(serviceName, metricName, v)
}

func (r *MetricsRegistry) register(serviceName, metricName string, c prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", serviceName, metricName)
	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("metric %s already registered for service %s", metricName, serviceName),
			"MetricsRegistry", "register", "duplicate metric registration")
	}

	if err := r.prometheusRegistry.Register(c); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalid(err, "MetricsRegistry", "register",
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.WrapFatal(err, "MetricsRegistry", "register",
			"failed to register collector with prometheus")
	}

	r.registeredMetrics[key] = c
	return nil
}

// Unregister removes a previously registered metric.
func (r *MetricsRegistry) Unregister(serviceName, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", serviceName, metricName)
	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}
	if r.prometheusRegistry.Unregister(collector) {
		delete(r.registeredMetrics, key)
		return true
	}
	return false
}
