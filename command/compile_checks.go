package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/refund"
)

var (
	_ gocmd.Commander[InitializeCashInMessage] = (*InitializeCashInCommand)(nil)
	_ gocmd.Commander[RefundMessage]           = (*RefundCommand)(nil)

	_ CashInService = (*cashin.Client)(nil)
	_ RefundService = (*refund.Client)(nil)
)
