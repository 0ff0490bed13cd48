package core

import "testing"

func TestRedactHeadersMasksAuthorization(t *testing.T) {
	headers := map[string]string{
		"Authorization": "Bearer topsecret",
		"Content-Type":  "application/json",
	}
	redacted := RedactHeaders(headers)
	if redacted["Authorization"] != RedactedValue {
		t.Fatalf("expected authorization to be redacted, got %q", redacted["Authorization"])
	}
	if redacted["Content-Type"] != "application/json" {
		t.Fatalf("expected content type to pass through")
	}
	if headers["Authorization"] != "Bearer topsecret" {
		t.Fatalf("redaction mutated the source map")
	}
}

func TestRedactSensitiveMapWalksNestedValues(t *testing.T) {
	redacted := RedactSensitiveMap(map[string]any{
		"job_handle": "abc",
		"request": map[string]any{
			"api_key": "k",
			"headers": map[string]string{"Authorization": "Bearer x"},
		},
	})
	if redacted["job_handle"] != "abc" {
		t.Fatalf("expected traceability key to pass through")
	}
	nested, ok := redacted["request"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", redacted["request"])
	}
	if nested["api_key"] != RedactedValue {
		t.Fatalf("expected nested api_key redacted, got %v", nested["api_key"])
	}
	headers, ok := nested["headers"].(map[string]string)
	if !ok {
		t.Fatalf("expected nested headers map, got %T", nested["headers"])
	}
	if headers["Authorization"] != RedactedValue {
		t.Fatalf("expected nested authorization redacted")
	}
}
