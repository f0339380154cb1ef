package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Telemetry logs and records metrics for one provider's operations.
type Telemetry struct {
	Logger   Logger
	Metrics  MetricsRecorder
	Provider ProviderID
	Clock    func() time.Time
}

func (t Telemetry) Now() time.Time {
	if t.Clock != nil {
		return t.Clock()
	}
	return time.Now()
}

// Start emits the "<operation>:start" debug event and returns the start time.
func (t Telemetry) Start(ctx context.Context, operation string, fields map[string]any) time.Time {
	startedAt := t.Now()
	operation = normalizeOperation(operation)
	contextFields := t.baseFields(operation, fields)
	t.logWithLevel(ctx, "debug", operation+":start", contextFields)
	return startedAt
}

// Observe emits the end event, the summary log line and the operation
// counter and duration histogram.
func (t Telemetry) Observe(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	duration := t.Now().Sub(startedAt).Milliseconds()

	contextFields := t.baseFields(operation, fields)
	contextFields["status"] = status
	contextFields["duration_ms"] = duration
	if err != nil {
		contextFields["error"] = err.Error()
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	if t.Provider != "" {
		tags["provider"] = string(t.Provider)
	}
	if value := strings.TrimSpace(fmt.Sprint(contextFields["canonical_status"])); value != "" && value != "<nil>" {
		tags["canonical_status"] = value
	}

	t.recordCounter(ctx, CounterName(operation), 1, tags)
	t.recordHistogram(ctx, DurationName(operation), float64(duration), tags)

	t.logWithLevel(ctx, "debug", operation+":end", contextFields)
	if err != nil {
		t.logWithLevel(ctx, "error", operation+" failed", contextFields)
		return
	}
	t.logWithLevel(ctx, "info", operation+" succeeded", contextFields)
}

func (t Telemetry) baseFields(operation string, fields map[string]any) map[string]any {
	contextFields := RedactSensitiveMap(fields)
	contextFields["operation"] = operation
	if t.Provider != "" {
		contextFields["provider"] = string(t.Provider)
	}
	return contextFields
}

func (t Telemetry) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if t.Logger == nil {
		return
	}
	logger := t.Logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logger.Debug(message, args...)
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (t Telemetry) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if t.Metrics == nil {
		return
	}
	t.Metrics.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (t Telemetry) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if t.Metrics == nil {
		return
	}
	t.Metrics.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
