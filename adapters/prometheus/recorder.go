package prometheus

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-mobile-money/core"
)

var labelNames = []string{"operation", "status", "provider", "canonical_status"}

// Recorder implements core.MetricsRecorder over a counter vec and a
// histogram vec. Operation names come from the "operation" tag; the metric
// name passed by the caller only picks the vec.
type Recorder struct {
	counters  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewRecorder registers the collectors on registerer, or on the default
// registerer when nil.
func NewRecorder(registerer prometheus.Registerer) (*Recorder, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: core.MetricNamespace,
			Name:      "operations_total",
			Help:      "Mobile money operations by outcome.",
		},
		labelNames,
	)
	durations := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: core.MetricNamespace,
			Name:      "operation_duration_ms",
			Help:      "Mobile money operation latency in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		labelNames,
	)
	for _, collector := range []prometheus.Collector{counters, durations} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("prometheus: register collector: %w", err)
		}
	}
	return &Recorder{counters: counters, durations: durations}, nil
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || r.counters == nil || value <= 0 {
		return
	}
	r.counters.With(labels(name, tags)).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil || r.durations == nil {
		return
	}
	r.durations.With(labels(name, tags)).Observe(value)
}

func labels(name string, tags map[string]string) prometheus.Labels {
	operation := strings.TrimSpace(tags["operation"])
	if operation == "" {
		operation = core.OperationFromMetricName(name)
	}
	return prometheus.Labels{
		"operation":        operation,
		"status":           strings.TrimSpace(tags["status"]),
		"provider":         strings.TrimSpace(tags["provider"]),
		"canonical_status": strings.TrimSpace(tags["canonical_status"]),
	}
}

var _ core.MetricsRecorder = (*Recorder)(nil)
