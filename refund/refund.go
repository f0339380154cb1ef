package refund

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

// Refund validates params and asks the provider to send funds back to the
// customer. The returned MessageID identifies the refund for VerifyRefund; it
// is empty when the provider accepts the refund without one.
func (c *Client) Refund(ctx context.Context, params Params) (Result, error) {
	if err := c.ready(); err != nil {
		return Result{}, err
	}
	if err := core.ValidateStruct("refund: invalid refund params", params); err != nil {
		return Result{}, err
	}

	fields := map[string]any{
		"request_id": c.requestID(),
		"amount":     params.Amount,
	}
	startedAt := c.telemetry.Start(ctx, OperationRefund, fields)

	result, err := c.refund(ctx, params)
	if err == nil {
		fields["message_id"] = result.MessageID
	}
	c.telemetry.Observe(ctx, startedAt, OperationRefund, err, fields)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *Client) refund(ctx context.Context, params Params) (Result, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return Result{}, err
	}

	method := params.RefundMethod
	if method == "" {
		method = core.RefundMethodOrangeMoney
	}
	body, err := json.Marshal(refundRequest{
		CustomerKey:        c.config.CustomerKey,
		CustomerSecret:     c.config.CustomerSecret,
		ChannelUserMSISDN:  c.config.ChannelUserMSISDN,
		PIN:                c.config.PIN,
		Webhook:            params.Webhook,
		Amount:             strconv.FormatInt(params.Amount, 10),
		FinalCustomerPhone: params.CustomerPhone,
		FinalCustomerName:  params.CustomerName,
		RefundMethod:       string(method),
	})
	if err != nil {
		return Result{}, core.NewOperationError(core.MessageRefundFailed, core.NewConfigFailed(err.Error(), err))
	}

	refundURL := c.endpoint("refund")
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method: http.MethodPost,
		URL:    refundURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + token.AccessToken,
			"Content-Type":  "application/json",
		},
		Body: body,
	})
	if err != nil {
		return Result{}, core.NewOperationError(core.MessageRefundFailed, transport.Normalize(err))
	}
	raw, err := transport.DecodeObject(http.MethodPost, refundURL, res)
	if err != nil {
		return Result{}, core.NewOperationError(core.MessageRefundFailed, err)
	}
	// An accepted refund without MessageId still succeeds; Raw carries the body.
	return Result{Raw: raw, MessageID: strings.TrimSpace(core.LookupString(raw, "MessageId"))}, nil
}
