package prometheus

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-mobile-money/core"
)

func TestRecorderThroughTelemetry(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := NewRecorder(registry)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	deps := core.ResolveDependencies(core.WithMetricsRecorder(recorder))
	telemetry := deps.Telemetry(core.ProviderOrangeMoney)
	startedAt := telemetry.Now()
	telemetry.Observe(context.Background(), startedAt, "verify_cash_in", nil, map[string]any{
		"canonical_status": "succeeded",
	})
	telemetry.Observe(context.Background(), startedAt, "verify_cash_in", nil, map[string]any{
		"canonical_status": "succeeded",
	})

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, family := range families {
		found[family.GetName()] = true
		if family.GetName() != "mobilemoney_operations_total" {
			continue
		}
		if len(family.GetMetric()) != 1 {
			t.Fatalf("expected one label set, got %d", len(family.GetMetric()))
		}
		metric := family.GetMetric()[0]
		if metric.GetCounter().GetValue() != 2 {
			t.Fatalf("expected counter 2, got %v", metric.GetCounter().GetValue())
		}
		got := map[string]string{}
		for _, pair := range metric.GetLabel() {
			got[pair.GetName()] = pair.GetValue()
		}
		if got["operation"] != "verify_cash_in" || got["provider"] != "orange_money" ||
			got["status"] != "success" || got["canonical_status"] != "succeeded" {
			t.Fatalf("unexpected labels %#v", got)
		}
	}
	if !found["mobilemoney_operations_total"] || !found["mobilemoney_operation_duration_ms"] {
		t.Fatalf("expected both collectors to be gathered, got %#v", found)
	}
}

func TestRecorderRejectsDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	if _, err := NewRecorder(registry); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewRecorder(registry); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestLabelsFallBackToMetricName(t *testing.T) {
	if got := labels("mobilemoney.refund.total", nil)["operation"]; got != "refund" {
		t.Fatalf("expected refund, got %q", got)
	}
	if got := labels("total", map[string]string{"status": "success"})["operation"]; got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	var nilRecorder *Recorder
	nilRecorder.IncCounter(context.Background(), "mobilemoney.refund.total", 1, nil)
}
