package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/refund"
)

// CashInService is the mutating half of the cash in client.
type CashInService interface {
	InitializeCashIn(ctx context.Context, params cashin.InitializeParams) (cashin.InitializeResult, error)
}

// RefundService is the mutating half of the refund client.
type RefundService interface {
	Refund(ctx context.Context, params refund.Params) (refund.Result, error)
}

type InitializeCashInCommand struct {
	service CashInService
}

func NewInitializeCashInCommand(service CashInService) *InitializeCashInCommand {
	return &InitializeCashInCommand{service: service}
}

func (c *InitializeCashInCommand) Execute(ctx context.Context, msg InitializeCashInMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cash in service is required")
	}
	out, err := c.service.InitializeCashIn(ctx, msg.Params)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RefundCommand struct {
	service RefundService
}

func NewRefundCommand(service RefundService) *RefundCommand {
	return &RefundCommand{service: service}
}

func (c *RefundCommand) Execute(ctx context.Context, msg RefundMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refund service is required")
	}
	out, err := c.service.Refund(ctx, msg.Params)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
