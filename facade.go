package mobilemoney

import (
	"context"
	"fmt"

	"github.com/goliatone/go-mobile-money/adapters/gocommand"
	mmcommand "github.com/goliatone/go-mobile-money/command"
	mmquery "github.com/goliatone/go-mobile-money/query"
	"github.com/goliatone/go-mobile-money/refund"
)

type Commands struct {
	InitializeCashIn *mmcommand.InitializeCashInCommand
	Refund           *mmcommand.RefundCommand
}

type Queries struct {
	VerifyCashIn *mmquery.VerifyCashInQuery
	VerifyRefund *mmquery.VerifyRefundQuery
}

type Facade struct {
	service  *Service
	commands Commands
	queries  Queries
}

func NewFacade(service *Service) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("mobilemoney: service is required")
	}
	return &Facade{
		service: service,
		commands: Commands{
			InitializeCashIn: mmcommand.NewInitializeCashInCommand(service),
			Refund:           mmcommand.NewRefundCommand(refundFunc(service.CreateRefund)),
		},
		queries: Queries{
			VerifyCashIn: mmquery.NewVerifyCashInQuery(service),
			VerifyRefund: mmquery.NewVerifyRefundQuery(service),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() *Service {
	if f == nil {
		return nil
	}
	return f.service
}

// Handlers lists the handlers for the sections the service has configured.
func (f *Facade) Handlers() gocommand.Handlers {
	if f == nil || f.service == nil {
		return gocommand.Handlers{}
	}
	handlers := gocommand.Handlers{}
	if f.service.CashIn() != nil {
		handlers.InitializeCashIn = f.commands.InitializeCashIn
		handlers.VerifyCashIn = f.queries.VerifyCashIn
	}
	if f.service.Refund() != nil {
		handlers.Refund = f.commands.Refund
		handlers.VerifyRefund = f.queries.VerifyRefund
	}
	return handlers
}

type refundFunc func(ctx context.Context, params refund.Params) (refund.Result, error)

func (fn refundFunc) Refund(ctx context.Context, params refund.Params) (refund.Result, error) {
	return fn(ctx, params)
}

var (
	_ mmcommand.CashInService = (*Service)(nil)
	_ mmcommand.RefundService = refundFunc(nil)
	_ mmquery.CashInVerifier  = (*Service)(nil)
	_ mmquery.RefundVerifier  = (*Service)(nil)
)
