package core

import (
	"context"
	"testing"
)

func TestResolveConfigLayersRuntimeOverLoaded(t *testing.T) {
	provider := NewCfgxConfigProvider(NewStaticRawConfigLoader(map[string]any{
		"service_name":    "qpu-lab",
		"default_backend": "qudora",
		"settings": map[string]any{
			"machine": "QVLS-Q1",
		},
	}))

	resolved, err := ResolveConfig(context.Background(), provider, GoOptionsResolver{}, Config{
		Settings: map[string]string{"machine": "QVLS-Q2"},
	})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if resolved.ServiceName != "qpu-lab" {
		t.Fatalf("expected loaded service name, got %q", resolved.ServiceName)
	}
	if resolved.DefaultBackend != "qudora" {
		t.Fatalf("expected loaded default backend, got %q", resolved.DefaultBackend)
	}
	if machine, _ := resolved.Setting("machine"); machine != "QVLS-Q2" {
		t.Fatalf("expected runtime machine override, got %q", machine)
	}
}

func TestResolveConfigDefaultsWhenNothingProvided(t *testing.T) {
	resolved, err := ResolveConfig(context.Background(), nil, nil, Config{})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if resolved.ServiceName != "qpu" {
		t.Fatalf("expected default service name, got %q", resolved.ServiceName)
	}
}

func TestConfigValidateRequiresServiceName(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected empty service name to fail validation")
	}
}
