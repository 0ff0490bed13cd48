package qpu

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/quantabridge/go-qpu/backends/qudora"
	"github.com/quantabridge/go-qpu/core"
	"github.com/quantabridge/go-qpu/executor"
	"github.com/quantabridge/go-qpu/transport"
)

type serviceBuilder struct {
	runtimeConfig   core.Config
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metrics         core.MetricsRecorder
	transport       core.TransportAdapter
	ledger          core.JobLedger
	registry        *core.BackendRegistry
}

type Option func(*serviceBuilder)

// WithConfigProvider sets the loader the resolved configuration starts from.
func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *serviceBuilder) { b.configProvider = provider }
}

// WithOptionsResolver overrides the defaults/loaded/runtime layering.
func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *serviceBuilder) { b.optionsResolver = resolver }
}

// WithRuntimeConfig layers caller overrides on top of loaded configuration.
func WithRuntimeConfig(cfg core.Config) Option {
	return func(b *serviceBuilder) { b.runtimeConfig = cfg }
}

func WithTransport(adapter core.TransportAdapter) Option {
	return func(b *serviceBuilder) { b.transport = adapter }
}

func WithLedger(ledger core.JobLedger) Option {
	return func(b *serviceBuilder) { b.ledger = ledger }
}

func WithLogger(logger core.Logger) Option {
	return func(b *serviceBuilder) { b.logger = logger }
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *serviceBuilder) { b.loggerProvider = provider }
}

func WithMetrics(recorder core.MetricsRecorder) Option {
	return func(b *serviceBuilder) { b.metrics = recorder }
}

// WithRegistry supplies a pre-populated backend registry. Backends already
// registered under the configured default id are kept as-is.
func WithRegistry(registry *core.BackendRegistry) Option {
	return func(b *serviceBuilder) { b.registry = registry }
}

// New resolves the library configuration through the cfgx + options
// pipeline, constructs the configured default backend from the resolved
// settings, and returns an execution service ready for submissions.
func New(ctx context.Context, options ...Option) (*executor.Service, error) {
	builder := serviceBuilder{}
	for _, option := range options {
		if option != nil {
			option(&builder)
		}
	}

	cfg, err := core.ResolveConfig(ctx, builder.configProvider, builder.optionsResolver, builder.runtimeConfig)
	if err != nil {
		return nil, err
	}

	registry := builder.registry
	if registry == nil {
		registry = core.NewBackendRegistry()
	}
	backendID := strings.TrimSpace(cfg.DefaultBackend)
	if backendID == "" {
		backendID = qudora.BackendID
	}
	if _, ok := registry.Get(backendID); !ok {
		backend, err := buildBackend(backendID, cfg.Settings)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(backend); err != nil {
			return nil, err
		}
	}

	adapter := builder.transport
	if adapter == nil {
		adapter = transport.NewRESTAdapter(nil)
	}

	svc := executor.NewService(registry, adapter)
	if builder.ledger != nil {
		svc.Ledger = builder.ledger
	} else {
		svc.Ledger = core.NewMemoryJobLedger()
	}
	if builder.metrics != nil {
		svc.Metrics = builder.metrics
	}
	_, logger := glog.Resolve(cfg.ServiceName, builder.loggerProvider, builder.logger)
	svc.Logger = glog.Ensure(logger)
	return svc, nil
}

func buildBackend(backendID string, settings map[string]string) (core.Backend, error) {
	switch backendID {
	case qudora.BackendID:
		return qudora.NewFromSettings(settings)
	default:
		return nil, goerrors.New(
			fmt.Sprintf("qpu: no backend implementation for %q", backendID),
			goerrors.CategoryNotFound,
		).WithCode(http.StatusNotFound).WithTextCode(core.BackendErrorNotFound)
	}
}
