// Package mobilemoney drives Orange Money cash in and Y-Note refunds.
//
// New resolves configuration and builds one client per configured section:
//
//	svc, err := mobilemoney.New(mobilemoney.Config{
//		Environment: mobilemoney.EnvironmentProd,
//		CashIn:      mobilemoney.CashInConfig{ /* credentials */ },
//	})
//	result, err := svc.InitializeCashIn(ctx, cashin.InitializeParams{ /* ... */ })
//
// Every operation returns either a populated result and a nil error, or a
// zero result and one of *ValidationError, *OperationError or
// *NormalizedError. ToServiceError maps any of them to a go-errors envelope.
package mobilemoney

import (
	"context"

	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/refund"
)

type Config = core.Config
type CashInConfig = core.CashInConfig
type RefundConfig = core.RefundConfig
type Environment = core.Environment
type Option = core.Option
type Dependencies = core.Dependencies

type Status = core.Status
type RawStatus = core.RawStatus
type RefundStep = core.RefundStep

type ValidationError = core.ValidationError
type OperationError = core.OperationError
type NormalizedError = core.NormalizedError

const (
	EnvironmentDev  = core.EnvironmentDev
	EnvironmentProd = core.EnvironmentProd

	StatusPending   = core.StatusPending
	StatusSucceeded = core.StatusSucceeded
	StatusFailed    = core.StatusFailed
	StatusUnknown   = core.StatusUnknown
)

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithLoggerName         = core.WithLoggerName
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithTransport          = core.WithTransport
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithRequestIDGenerator = core.WithRequestIDGenerator
	WithClock              = core.WithClock

	ToServiceError = core.ToServiceError
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Service owns the clients built from one resolved configuration. Sections
// left empty produce no client, and their operations fail with an internal
// dependency error.
type Service struct {
	config Config
	deps   Dependencies
	cashIn *cashin.Client
	refund *refund.Client
}

func New(cfg Config, opts ...Option) (*Service, error) {
	return NewWithContext(context.Background(), cfg, opts...)
}

// NewWithContext layers defaults, loaded configuration and cfg, then builds
// the configured clients. ctx is only used while loading configuration.
func NewWithContext(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	deps := core.ResolveDependencies(opts...)
	resolved, err := core.ResolveConfig(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}

	svc := &Service{config: resolved, deps: deps}
	if resolved.CashIn.Configured() {
		client, err := cashin.NewClientWithDependencies(resolved.CashIn, resolved.Environment, deps)
		if err != nil {
			return nil, err
		}
		svc.cashIn = client
	}
	if resolved.Refund.Configured() {
		client, err := refund.NewClientWithDependencies(resolved.Refund, resolved.Environment, deps)
		if err != nil {
			return nil, err
		}
		svc.refund = client
	}
	deps.Logger.Debug("mobilemoney service ready",
		"service_name", resolved.ServiceName,
		"environment", string(resolved.Environment),
		"cash_in", svc.cashIn != nil,
		"refund", svc.refund != nil,
	)
	return svc, nil
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() Dependencies {
	if s == nil {
		return Dependencies{}
	}
	return s.deps
}

// CashIn returns nil when the cash_in section is not configured.
func (s *Service) CashIn() *cashin.Client {
	if s == nil {
		return nil
	}
	return s.cashIn
}

// Refund returns nil when the refund section is not configured.
func (s *Service) Refund() *refund.Client {
	if s == nil {
		return nil
	}
	return s.refund
}

func (s *Service) InitializeCashIn(ctx context.Context, params cashin.InitializeParams) (cashin.InitializeResult, error) {
	client, err := s.cashInClient()
	if err != nil {
		return cashin.InitializeResult{}, err
	}
	return client.InitializeCashIn(ctx, params)
}

func (s *Service) VerifyCashIn(ctx context.Context, params cashin.VerifyParams) (cashin.VerifyResult, error) {
	client, err := s.cashInClient()
	if err != nil {
		return cashin.VerifyResult{}, err
	}
	return client.VerifyCashIn(ctx, params)
}

func (s *Service) CreateRefund(ctx context.Context, params refund.Params) (refund.Result, error) {
	client, err := s.refundClient()
	if err != nil {
		return refund.Result{}, err
	}
	return client.Refund(ctx, params)
}

func (s *Service) VerifyRefund(ctx context.Context, params refund.VerifyParams) (refund.VerifyResult, error) {
	client, err := s.refundClient()
	if err != nil {
		return refund.VerifyResult{}, err
	}
	return client.VerifyRefund(ctx, params)
}

func (s *Service) cashInClient() (*cashin.Client, error) {
	if s == nil || s.cashIn == nil {
		return nil, core.NewDependencyError("mobilemoney: cash_in section is not configured")
	}
	return s.cashIn, nil
}

func (s *Service) refundClient() (*refund.Client, error) {
	if s == nil || s.refund == nil {
		return nil, core.NewDependencyError("mobilemoney: refund section is not configured")
	}
	return s.refund, nil
}
