package cashin

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

// InitiateTransaction exchanges credentials and asks the provider for a pay
// token. Each call performs its own credential exchange.
func (c *Client) InitiateTransaction(ctx context.Context) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	fields := map[string]any{"request_id": c.requestID()}
	startedAt := c.telemetry.Start(ctx, OperationInitiateTransaction, fields)

	payToken, err := c.initiate(ctx)
	if err == nil {
		fields["pay_token"] = payToken
	}
	c.telemetry.Observe(ctx, startedAt, OperationInitiateTransaction, err, fields)
	return payToken, err
}

func (c *Client) initiate(ctx context.Context) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	initURL := c.endpoint("init")
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  http.MethodPost,
		URL:     initURL,
		Headers: c.headers(token),
	})
	if err != nil {
		return "", core.NewOperationError(core.MessageCashInFailed, transport.Normalize(err))
	}
	raw, err := transport.DecodeObject(http.MethodPost, initURL, res)
	if err != nil {
		return "", core.NewOperationError(core.MessageCashInFailed, err)
	}
	payToken := strings.TrimSpace(core.LookupString(raw, "data", "payToken"))
	if payToken == "" {
		return "", core.NewOperationError(
			core.MessageCashInFailed,
			transport.MalformedResponse(http.MethodPost, initURL, res, errPayTokenMissing),
		)
	}
	return payToken, nil
}
