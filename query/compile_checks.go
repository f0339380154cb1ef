package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/refund"
)

var (
	_ gocmd.Querier[VerifyCashInMessage, cashin.VerifyResult] = (*VerifyCashInQuery)(nil)
	_ gocmd.Querier[VerifyRefundMessage, refund.VerifyResult] = (*VerifyRefundQuery)(nil)

	_ CashInVerifier = (*cashin.Client)(nil)
	_ RefundVerifier = (*refund.Client)(nil)
)
