package core

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestDefaultErrorMapperClassifiesByMessage(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		textCode string
	}{
		{"not registered", errors.New("backend qudora not registered"), BackendErrorNotFound},
		{"credentials", errors.New("empty API key in credential file"), BackendErrorCredentialsInvalid},
		{"cancelled", errors.New("job was cancelled"), BackendErrorJobCancelled},
		{"decode", errors.New("decode result string failed"), BackendErrorDecodeFailed},
		{"bad input", errors.New("machine id is required"), BackendErrorBadInput},
	}
	for _, tc := range cases {
		mapped := DefaultErrorMapper(tc.err)
		if mapped == nil {
			t.Fatalf("%s: expected mapped error", tc.name)
		}
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%s: expected text code %q, got %q", tc.name, tc.textCode, mapped.TextCode)
		}
		if mapped.Code == 0 {
			t.Fatalf("%s: expected a non-zero code", tc.name)
		}
	}
}

func TestDefaultErrorMapperKeepsRichErrors(t *testing.T) {
	source := goerrors.New("job failed to execute", goerrors.CategoryExternal).
		WithTextCode(BackendErrorJobFailed)

	mapped := DefaultErrorMapper(source)
	if mapped.TextCode != BackendErrorJobFailed {
		t.Fatalf("expected text code preserved, got %q", mapped.TextCode)
	}
	if mapped.Code == 0 {
		t.Fatalf("expected envelope to backfill a code")
	}
}

func TestDefaultErrorMapperNil(t *testing.T) {
	if mapped := DefaultErrorMapper(nil); mapped != nil {
		t.Fatalf("expected nil for nil input, got %v", mapped)
	}
}

func TestEnsureErrorEnvelopeBackfillsInternal(t *testing.T) {
	err := EnsureErrorEnvelope(goerrors.New("", goerrors.CategoryInternal))
	if err.Message == "" {
		t.Fatalf("expected a fallback message for empty internal errors")
	}
	if err.TextCode != BackendErrorInternal {
		t.Fatalf("expected internal text code, got %q", err.TextCode)
	}
}
