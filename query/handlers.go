package query

import (
	"context"

	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/refund"
)

type CashInVerifier interface {
	VerifyCashIn(ctx context.Context, params cashin.VerifyParams) (cashin.VerifyResult, error)
}

type RefundVerifier interface {
	VerifyRefund(ctx context.Context, params refund.VerifyParams) (refund.VerifyResult, error)
}

type VerifyCashInQuery struct {
	verifier CashInVerifier
}

func NewVerifyCashInQuery(verifier CashInVerifier) *VerifyCashInQuery {
	return &VerifyCashInQuery{verifier: verifier}
}

func (q *VerifyCashInQuery) Query(ctx context.Context, msg VerifyCashInMessage) (cashin.VerifyResult, error) {
	if q == nil || q.verifier == nil {
		return cashin.VerifyResult{}, queryDependencyError("query: cash in verifier is required")
	}
	return q.verifier.VerifyCashIn(ctx, msg.Params)
}

type VerifyRefundQuery struct {
	verifier RefundVerifier
}

func NewVerifyRefundQuery(verifier RefundVerifier) *VerifyRefundQuery {
	return &VerifyRefundQuery{verifier: verifier}
}

func (q *VerifyRefundQuery) Query(ctx context.Context, msg VerifyRefundMessage) (refund.VerifyResult, error) {
	if q == nil || q.verifier == nil {
		return refund.VerifyResult{}, queryDependencyError("query: refund verifier is required")
	}
	return q.verifier.VerifyRefund(ctx, msg.Params)
}
