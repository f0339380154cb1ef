package core

import "testing"

func TestRedactSensitiveMap(t *testing.T) {
	out := RedactSensitiveMap(map[string]any{
		"customersecret": "s",
		"pin":            "1234",
		"request_id":     "req-1",
		"nested": map[string]any{
			"access_token": "abc",
			"amount":       "5",
		},
	})
	if out["customersecret"] != RedactedValue || out["pin"] != RedactedValue {
		t.Fatalf("expected secrets redacted: %+v", out)
	}
	if out["request_id"] != "req-1" {
		t.Fatalf("expected request id preserved")
	}
	nested := out["nested"].(map[string]any)
	if nested["access_token"] != RedactedValue || nested["amount"] != "5" {
		t.Fatalf("unexpected nested redaction: %+v", nested)
	}
}

func TestRedactHeaders(t *testing.T) {
	out := RedactHeaders(map[string]string{
		"Authorization": "Bearer abc",
		"X-AUTH-TOKEN":  "merchant",
		"Content-Type":  "application/json",
	})
	if out["Authorization"] != RedactedValue || out["X-AUTH-TOKEN"] != RedactedValue {
		t.Fatalf("expected auth headers redacted: %+v", out)
	}
	if out["Content-Type"] != "application/json" {
		t.Fatalf("expected content type preserved")
	}
}
