package executor

import (
	"context"
	"sort"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/quantabridge/go-qpu/core"
)

func dependencyError(message string) error {
	return core.EnsureErrorEnvelope(
		goerrors.New(message, goerrors.CategoryInternal).
			WithTextCode(core.BackendErrorInternal),
	)
}

func (e *Executor) logInfo(ctx context.Context, message string, fields map[string]any) {
	e.logWithLevel(ctx, "info", message, fields)
}

func (e *Executor) logDebug(ctx context.Context, message string, fields map[string]any) {
	e.logWithLevel(ctx, "debug", message, fields)
}

func (e *Executor) logError(ctx context.Context, message string, fields map[string]any) {
	e.logWithLevel(ctx, "error", message, fields)
}

func (e *Executor) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if e == nil || e.Logger == nil {
		return
	}
	logger := e.Logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	args := flattenFields(fields)
	switch level {
	case "error":
		logger.Error(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (e *Executor) count(ctx context.Context, name string, backendID string) {
	if e == nil || e.Metrics == nil {
		return
	}
	e.Metrics.IncCounter(ctx, name, 1, map[string]string{"backend_id": backendID})
}

func (e *Executor) observe(ctx context.Context, name string, value time.Duration, backendID string) {
	if e == nil || e.Metrics == nil {
		return
	}
	e.Metrics.ObserveDuration(ctx, name, value, map[string]string{"backend_id": backendID})
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
