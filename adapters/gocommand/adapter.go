package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	"github.com/goliatone/go-mobile-money/cashin"
	mmcommand "github.com/goliatone/go-mobile-money/command"
	mmquery "github.com/goliatone/go-mobile-money/query"
	"github.com/goliatone/go-mobile-money/refund"
)

// ValidateMessageContract checks Type() and, when present, Validate().
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) AddQueueResolver(key string, queueRegistry *jobqueuecommand.Registry) error {
	if queueRegistry == nil {
		return fmt.Errorf("gocommand: queue registry is required")
	}
	return a.AddResolver(key, jobqueuecommand.QueueResolver(queueRegistry))
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeCommandFunc[T any](handler command.CommandFunc[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(handler, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func SubscribeQueryFunc[T any, R any](qry command.QueryFunc[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// Handlers groups the mobile money commands and queries. Nil entries are
// skipped, so a service with only one configured provider can register half.
type Handlers struct {
	InitializeCashIn *mmcommand.InitializeCashInCommand
	Refund           *mmcommand.RefundCommand
	VerifyCashIn     *mmquery.VerifyCashInQuery
	VerifyRefund     *mmquery.VerifyRefundQuery
}

// RegisterHandlers registers and subscribes every configured handler. On
// failure the subscriptions made so far are released.
func RegisterHandlers(
	adapter *RegistryAdapter,
	handlers Handlers,
	runnerOpts ...runner.Option,
) ([]commanddispatcher.Subscription, error) {
	subscriptions := []commanddispatcher.Subscription{}
	release := func() {
		for _, subscription := range subscriptions {
			if subscription != nil {
				subscription.Unsubscribe()
			}
		}
	}
	track := func(subscription commanddispatcher.Subscription, err error) error {
		if err != nil {
			release()
			return err
		}
		subscriptions = append(subscriptions, subscription)
		return nil
	}

	if handlers.InitializeCashIn != nil {
		if err := track(RegisterAndSubscribe[mmcommand.InitializeCashInMessage](adapter, handlers.InitializeCashIn, runnerOpts...)); err != nil {
			return nil, err
		}
	}
	if handlers.Refund != nil {
		if err := track(RegisterAndSubscribe[mmcommand.RefundMessage](adapter, handlers.Refund, runnerOpts...)); err != nil {
			return nil, err
		}
	}
	if handlers.VerifyCashIn != nil {
		if err := track(RegisterAndSubscribeQuery[mmquery.VerifyCashInMessage, cashin.VerifyResult](adapter, handlers.VerifyCashIn, runnerOpts...)); err != nil {
			return nil, err
		}
	}
	if handlers.VerifyRefund != nil {
		if err := track(RegisterAndSubscribeQuery[mmquery.VerifyRefundMessage, refund.VerifyResult](adapter, handlers.VerifyRefund, runnerOpts...)); err != nil {
			return nil, err
		}
	}
	return subscriptions, nil
}

// DispatchInitializeCashIn dispatches the command and returns the result the
// handler stored.
func DispatchInitializeCashIn(ctx context.Context, params cashin.InitializeParams) (cashin.InitializeResult, error) {
	return dispatchWithResult[mmcommand.InitializeCashInMessage, cashin.InitializeResult](
		ctx,
		mmcommand.InitializeCashInMessage{Params: params},
	)
}

func DispatchRefund(ctx context.Context, params refund.Params) (refund.Result, error) {
	return dispatchWithResult[mmcommand.RefundMessage, refund.Result](ctx, mmcommand.RefundMessage{Params: params})
}

func QueryVerifyCashIn(ctx context.Context, params cashin.VerifyParams) (cashin.VerifyResult, error) {
	return Query[mmquery.VerifyCashInMessage, cashin.VerifyResult](ctx, mmquery.VerifyCashInMessage{Params: params})
}

func QueryVerifyRefund(ctx context.Context, params refund.VerifyParams) (refund.VerifyResult, error) {
	return Query[mmquery.VerifyRefundMessage, refund.VerifyResult](ctx, mmquery.VerifyRefundMessage{Params: params})
}

func dispatchWithResult[T any, R any](ctx context.Context, msg T) (R, error) {
	var zero R
	if ctx == nil {
		ctx = context.Background()
	}
	collector := command.NewResult[R]()
	if err := Dispatch(command.ContextWithResult(ctx, collector), msg); err != nil {
		return zero, err
	}
	out, ok := collector.Load()
	if !ok {
		return zero, fmt.Errorf("gocommand: %T produced no result", msg)
	}
	return out, nil
}
