package query

import (
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/refund"
)

const (
	TypeVerifyCashIn = "mobilemoney.query.cashin.verify"
	TypeVerifyRefund = "mobilemoney.query.refund.verify"
)

type VerifyCashInMessage struct {
	Params cashin.VerifyParams
}

func (VerifyCashInMessage) Type() string { return TypeVerifyCashIn }

func (m VerifyCashInMessage) Validate() error {
	return queryValidation(core.ValidateStruct("query: invalid cash in verify params", m.Params))
}

type VerifyRefundMessage struct {
	Params refund.VerifyParams
}

func (VerifyRefundMessage) Type() string { return TypeVerifyRefund }

func (m VerifyRefundMessage) Validate() error {
	return queryValidation(core.ValidateStruct("query: invalid refund verify params", m.Params))
}
