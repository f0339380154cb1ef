package core

import (
	"context"
	"strings"
)

const MetricNamespace = "mobilemoney"

const (
	metricSuffixTotal    = "total"
	metricSuffixDuration = "duration_ms"
)

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

// CounterName returns "mobilemoney.<operation>.total".
func CounterName(operation string) string {
	return MetricNamespace + "." + operation + "." + metricSuffixTotal
}

// DurationName returns "mobilemoney.<operation>.duration_ms".
func DurationName(operation string) string {
	return MetricNamespace + "." + operation + "." + metricSuffixDuration
}

// OperationFromMetricName reverses CounterName and DurationName. Names
// outside the namespace yield "unknown".
func OperationFromMetricName(name string) string {
	name = strings.TrimSpace(name)
	rest, ok := strings.CutPrefix(name, MetricNamespace+".")
	if !ok {
		return "unknown"
	}
	for _, suffix := range []string{metricSuffixTotal, metricSuffixDuration} {
		if operation, found := strings.CutSuffix(rest, "."+suffix); found && operation != "" {
			return operation
		}
	}
	return "unknown"
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}

var _ MetricsRecorder = NopMetricsRecorder{}
