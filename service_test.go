package qpu

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/quantabridge/go-qpu/backends/devkit"
	"github.com/quantabridge/go-qpu/backends/qudora"
	qpucommand "github.com/quantabridge/go-qpu/command"
	"github.com/quantabridge/go-qpu/core"
)

func TestNewDrivesSubmitAndResultsFromLiteralConfig(t *testing.T) {
	t.Setenv(qudora.CredentialsEnvVar, "TESTKEY")

	loader := core.NewStaticRawConfigLoader(map[string]any{
		"service_name":    "qpu-tests",
		"default_backend": "qudora",
		"settings": map[string]any{
			"machine": "QVLS-Q2",
			"url":     "https://qpu.test/jobs",
		},
	})
	adapter := devkit.NewFakeTransportAdapter("rest",
		devkit.TransportScript{Response: devkit.AcceptedJobResponse("job-40")},
		devkit.TransportScript{Response: devkit.CompletedResponse(core.Histogram{"00": 60, "11": 40})},
	)

	svc, err := New(context.Background(),
		WithConfigProvider(core.NewCfgxConfigProvider(loader)),
		WithTransport(adapter),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	submission, err := svc.SubmitJob(context.Background(), qpucommand.SubmitJobRequest{
		BackendID: qudora.BackendID,
		Programs:  []core.CircuitProgram{{Name: "bell", Shots: 100, Code: []byte("bitcode")}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submission.Handle.String() != `"job-40"` {
		t.Fatalf("unexpected handle %q", submission.Handle)
	}

	requests := adapter.Requests()
	if len(requests) == 0 {
		t.Fatalf("expected a submission exchange")
	}
	if requests[0].URL != "https://qpu.test/jobs/" {
		t.Fatalf("expected submission against the configured endpoint, got %q", requests[0].URL)
	}

	sample, err := svc.JobResults(context.Background(), submission.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	counts, ok := sample.Register("bell")
	if !ok {
		t.Fatalf("expected bell register")
	}
	if counts["00"] != 60 || counts["11"] != 40 {
		t.Fatalf("unexpected histogram: %v", counts)
	}
}

func TestNewDefaultsToQudoraBackend(t *testing.T) {
	t.Setenv(qudora.CredentialsEnvVar, "TESTKEY")

	svc, err := New(context.Background(),
		WithTransport(devkit.NewFakeTransportAdapter("rest")),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	backend, ok := svc.Registry.Get(qudora.BackendID)
	if !ok {
		t.Fatalf("expected default backend registered")
	}
	if backend.Target() != qudora.DefaultMachine {
		t.Fatalf("unexpected default machine %q", backend.Target())
	}
}

func TestNewRejectsUnknownDefaultBackend(t *testing.T) {
	loader := core.NewStaticRawConfigLoader(map[string]any{
		"default_backend": "nonexistent",
	})

	_, err := New(context.Background(),
		WithConfigProvider(core.NewCfgxConfigProvider(loader)),
	)
	if err == nil {
		t.Fatalf("expected unknown backend to fail")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.BackendErrorNotFound {
		t.Fatalf("expected not-found code, got %q", rich.TextCode)
	}
}

func TestNewRejectsInvalidBackendSettings(t *testing.T) {
	loader := core.NewStaticRawConfigLoader(map[string]any{
		"default_backend": "qudora",
		"settings": map[string]any{
			"unknown_key": "value",
		},
	})

	if _, err := New(context.Background(),
		WithConfigProvider(core.NewCfgxConfigProvider(loader)),
	); err == nil {
		t.Fatalf("expected unknown setting to fail backend construction")
	}
}

func TestNewKeepsPreRegisteredBackend(t *testing.T) {
	t.Setenv(qudora.CredentialsEnvVar, "TESTKEY")

	custom, err := qudora.NewFromSettings(map[string]string{"machine": "QVLS-Q9"})
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	registry := core.NewBackendRegistry()
	if err := registry.Register(custom); err != nil {
		t.Fatalf("register backend: %v", err)
	}

	svc, err := New(context.Background(),
		WithRegistry(registry),
		WithTransport(devkit.NewFakeTransportAdapter("rest")),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	backend, ok := svc.Registry.Get(qudora.BackendID)
	if !ok {
		t.Fatalf("expected backend in registry")
	}
	if backend.Target() != "QVLS-Q9" {
		t.Fatalf("expected pre-registered backend kept, got machine %q", backend.Target())
	}
}
