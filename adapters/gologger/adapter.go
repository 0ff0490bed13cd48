// Package gologger resolves glog loggers for the execution pipeline and
// maps them onto the go-job logging contracts used by the poll queue.
package gologger

import (
	"strings"

	job "github.com/goliatone/go-job"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/quantabridge/go-qpu/core"
)

// DefaultLoggerName is the channel name execution components log under
// when the caller does not pick one.
const DefaultLoggerName = "qpu"

// Resolve uses deterministic precedence provider > logger > nop. An empty
// name falls back to DefaultLoggerName.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(loggerName(name), provider, logger)
}

// ForExecutor resolves the logger handed to executor.Service and the
// per-backend executors. Never returns nil.
func ForExecutor(provider glog.LoggerProvider, logger glog.Logger) core.Logger {
	_, resolved := Resolve(DefaultLoggerName, provider, logger)
	return glog.Ensure(resolved)
}

// ToJobProvider maps a glog provider to the go-job logger provider contract.
func ToJobProvider(provider glog.LoggerProvider) job.LoggerProvider {
	if provider == nil {
		return nil
	}
	return job.GoLoggerProvider(provider)
}

// ToJobLogger maps a glog logger to the go-job logger contract.
func ToJobLogger(logger glog.Logger) job.Logger {
	if logger == nil {
		return nil
	}
	return job.GoLogger(logger)
}

// ResolveForJob resolves glog logger/provider for the poll queue runtime
// and returns the equivalent go-job bridges alongside.
func ResolveForJob(
	name string,
	provider glog.LoggerProvider,
	logger glog.Logger,
) (glog.LoggerProvider, glog.Logger, job.LoggerProvider, job.Logger) {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return resolvedProvider, resolvedLogger, ToJobProvider(resolvedProvider), ToJobLogger(resolvedLogger)
}

func loggerName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultLoggerName
	}
	return name
}
