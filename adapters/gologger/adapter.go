package gologger

import (
	"strings"

	job "github.com/goliatone/go-job"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mobile-money/adapters/gojob"
	"github.com/goliatone/go-mobile-money/core"
)

const DefaultLoggerName = "mobilemoney"

// Resolve uses deterministic precedence provider > logger > nop. An empty
// name falls back to DefaultLoggerName.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultLoggerName
	}
	resolvedProvider, resolvedLogger := glog.Resolve(name, provider, logger)
	return resolvedProvider, glog.Ensure(resolvedLogger)
}

// ProviderLoggerName scopes a logger name to one money provider, for example
// "mobilemoney.orange_money".
func ProviderLoggerName(providerID core.ProviderID) string {
	id := strings.TrimSpace(string(providerID))
	if id == "" {
		return DefaultLoggerName
	}
	return DefaultLoggerName + "." + id
}

// ClientOptions routes client telemetry through the resolved logger pair.
func ClientOptions(name string, provider glog.LoggerProvider, logger glog.Logger) []core.Option {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	options := []core.Option{core.WithLogger(resolvedLogger)}
	if resolvedProvider != nil {
		options = append(options, core.WithLoggerProvider(resolvedProvider))
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		options = append(options, core.WithLoggerName(trimmed))
	}
	return options
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

// ResolveForJob resolves glog logger/provider then returns equivalent go-job adapters.
func ResolveForJob(
	name string,
	provider glog.LoggerProvider,
	logger glog.Logger,
) (glog.LoggerProvider, glog.Logger, job.LoggerProvider, job.Logger) {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return resolvedProvider, resolvedLogger, ToJobProvider(resolvedProvider), ToJobLogger(resolvedLogger)
}

// WorkerLogging returns the verification worker option and the go-job hook
// that share one resolved logger.
func WorkerLogging(name string, provider glog.LoggerProvider, logger glog.Logger) (gojob.WorkerOption, *gojob.LoggingHook) {
	_, resolved := Resolve(name, provider, logger)
	return gojob.WithLogger(resolved), gojob.NewLoggingHook(resolved)
}
