package cashin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

// InitializeCashIn validates params, then runs credential exchange, pay token
// initiation and the payment request in sequence. A successful flow makes
// four outbound calls: two credential exchanges, init and pay.
func (c *Client) InitializeCashIn(ctx context.Context, params InitializeParams) (InitializeResult, error) {
	if err := c.ready(); err != nil {
		return InitializeResult{}, err
	}
	if err := core.ValidateStruct("cashin: invalid initialize params", params); err != nil {
		return InitializeResult{}, err
	}

	fields := map[string]any{
		"request_id":   c.requestID(),
		"reference_id": params.ReferenceID,
		"amount":       params.Amount,
	}
	startedAt := c.telemetry.Start(ctx, OperationInitializeCashIn, fields)

	result, err := c.initializeCashIn(ctx, params)
	if err == nil {
		fields["pay_token"] = result.PayToken
		fields["canonical_status"] = string(result.Status)
		fields["raw_status"] = string(result.RawStatus)
	}
	c.telemetry.Observe(ctx, startedAt, OperationInitializeCashIn, err, fields)
	if err != nil {
		return InitializeResult{}, err
	}
	return result, nil
}

func (c *Client) initializeCashIn(ctx context.Context, params InitializeParams) (InitializeResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return InitializeResult{}, err
	}
	payToken, err := c.InitiateTransaction(ctx)
	if err != nil {
		return InitializeResult{}, err
	}

	body, err := json.Marshal(payRequest{
		SubscriberMSISDN:  params.PhoneNumber,
		NotifURL:          params.NotificationURL,
		OrderID:           params.ReferenceID,
		Description:       params.Comment,
		Amount:            strconv.FormatInt(params.Amount, 10),
		ChannelUserMSISDN: c.config.MerchantNumber,
		PayToken:          payToken,
		PIN:               c.config.PIN,
	})
	if err != nil {
		return InitializeResult{}, core.NewOperationError(core.MessageCashInFailed, core.NewConfigFailed(err.Error(), err))
	}

	payURL := c.endpoint("pay")
	headers := c.headers(token)
	headers["Content-Type"] = "application/json"
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  http.MethodPost,
		URL:     payURL,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return InitializeResult{}, core.NewOperationError(core.MessageCashInFailed, transport.Normalize(err))
	}
	raw, err := transport.DecodeObject(http.MethodPost, payURL, res)
	if err != nil {
		return InitializeResult{}, core.NewOperationError(core.MessageCashInFailed, err)
	}

	rawStatus := core.RawStatus(core.LookupString(raw, "data", "status"))
	return InitializeResult{
		Raw:       raw,
		PayToken:  payToken,
		Status:    core.CashInStatus(rawStatus),
		RawStatus: rawStatus,
	}, nil
}
