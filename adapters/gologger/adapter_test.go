package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mobile-money/core"
)

func TestResolveDeterministicFallback(t *testing.T) {
	loggerOnly := &capturingLogger{id: "logger"}
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}

	var resolvedProvider glog.LoggerProvider
	_, resolved := Resolve("mobilemoney", provider, loggerOnly)
	got := resolved.(*capturingLogger)
	if got.id != "provider" {
		t.Fatalf("expected provider logger precedence, got %q", got.id)
	}

	resolvedProvider, resolved = Resolve("mobilemoney", nil, loggerOnly)
	got = resolved.(*capturingLogger)
	if got.id != "logger" {
		t.Fatalf("expected direct logger when provider is nil, got %q", got.id)
	}
	if resolvedProvider == nil {
		t.Fatalf("expected provider wrapper from logger")
	}

	_, resolved = Resolve("mobilemoney", nil, nil)
	if resolved == nil {
		t.Fatalf("expected nop logger fallback")
	}
}

func TestGoJobBridgeCompatibility(t *testing.T) {
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}

	_, _, jobProvider, jobLogger := ResolveForJob("mobilemoney", provider, nil)
	if jobProvider == nil {
		t.Fatalf("expected go-job provider bridge")
	}
	if jobLogger == nil {
		t.Fatalf("expected go-job logger bridge")
	}

	bridged := jobProvider.GetLogger("mobilemoney")
	bridged.Info("hello", "k", "v")

	captured := providerLogger.lastInfo
	if captured.msg != "hello" {
		t.Fatalf("expected bridged message, got %q", captured.msg)
	}
	if captured.args[0] != "k" || captured.args[1] != "v" {
		t.Fatalf("expected bridged args, got %#v", captured.args)
	}
}

func TestResolveDefaultsName(t *testing.T) {
	provider := &capturingProvider{logger: &capturingLogger{id: "named"}}
	_, resolved := Resolve("  ", provider, nil)
	if resolved.(*capturingLogger).id != "named" {
		t.Fatalf("expected provider logger for default name")
	}
	if provider.lastName != DefaultLoggerName {
		t.Fatalf("expected lookup under %q, got %q", DefaultLoggerName, provider.lastName)
	}
}

func TestProviderLoggerName(t *testing.T) {
	if got := ProviderLoggerName(core.ProviderOrangeMoney); got != "mobilemoney.orange_money" {
		t.Fatalf("unexpected orange money logger name %q", got)
	}
	if got := ProviderLoggerName(""); got != DefaultLoggerName {
		t.Fatalf("expected default logger name, got %q", got)
	}
}

func TestClientOptionsRouteTelemetry(t *testing.T) {
	logger := &capturingLogger{id: "client"}
	options := ClientOptions("mobilemoney.cashin", nil, logger)
	if len(options) != 3 {
		t.Fatalf("expected logger, provider and name options, got %d", len(options))
	}
	deps := core.ResolveDependencies(options...)
	deps.Telemetry(core.ProviderOrangeMoney).Observe(context.Background(), deps.Clock(), "verify_cash_in", nil, nil)
	if logger.lastInfo.msg != "verify_cash_in succeeded" {
		t.Fatalf("expected summary log through client logger, got %q", logger.lastInfo.msg)
	}
}

func TestWorkerLogging(t *testing.T) {
	logger := &capturingLogger{id: "worker"}
	option, hook := WorkerLogging("mobilemoney.worker", nil, logger)
	if option == nil || hook == nil {
		t.Fatalf("expected worker option and hook")
	}
}

var (
	_ glog.Logger         = (*capturingLogger)(nil)
	_ glog.LoggerProvider = (*capturingProvider)(nil)
)

type capturingProvider struct {
	logger   *capturingLogger
	lastName string
}

func (p *capturingProvider) GetLogger(name string) glog.Logger {
	if p != nil {
		p.lastName = name
	}
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type infoCall struct {
	msg  string
	args []any
}

type capturingLogger struct {
	id       string
	lastInfo infoCall
}

func (l *capturingLogger) Trace(string, ...any) {}
func (l *capturingLogger) Debug(string, ...any) {}
func (l *capturingLogger) Warn(string, ...any)  {}
func (l *capturingLogger) Error(string, ...any) {}
func (l *capturingLogger) Fatal(string, ...any) {}

func (l *capturingLogger) Info(msg string, args ...any) {
	l.lastInfo = infoCall{
		msg:  msg,
		args: append([]any(nil), args...),
	}
}

func (l *capturingLogger) WithContext(context.Context) glog.Logger {
	return l
}
