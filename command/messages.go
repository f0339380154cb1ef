package command

import (
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/refund"
)

const (
	TypeInitializeCashIn = "mobilemoney.command.cashin.initialize"
	TypeRefund           = "mobilemoney.command.refund.create"
)

type InitializeCashInMessage struct {
	Params cashin.InitializeParams
}

func (InitializeCashInMessage) Type() string { return TypeInitializeCashIn }

func (m InitializeCashInMessage) Validate() error {
	return commandValidation(core.ValidateStruct("command: invalid cash in params", m.Params))
}

type RefundMessage struct {
	Params refund.Params
}

func (RefundMessage) Type() string { return TypeRefund }

func (m RefundMessage) Validate() error {
	return commandValidation(core.ValidateStruct("command: invalid refund params", m.Params))
}
