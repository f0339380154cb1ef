package refund

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

// VerifyRefund reads the refund status for a message id. Unrecognized
// provider statuses, including a missing one, are reported as unknown.
func (c *Client) VerifyRefund(ctx context.Context, params VerifyParams) (VerifyResult, error) {
	if err := c.ready(); err != nil {
		return VerifyResult{}, err
	}
	if err := core.ValidateStruct("refund: invalid verify params", params); err != nil {
		return VerifyResult{}, err
	}

	fields := map[string]any{
		"request_id": c.requestID(),
		"message_id": params.MessageID,
	}
	startedAt := c.telemetry.Start(ctx, OperationVerifyRefund, fields)

	result, err := c.verify(ctx, params)
	if err == nil {
		fields["canonical_status"] = string(result.Status)
		fields["raw_status"] = string(result.RawStatus)
		fields["refund_step"] = string(result.RefundStep)
	}
	c.telemetry.Observe(ctx, startedAt, OperationVerifyRefund, err, fields)
	if err != nil {
		return VerifyResult{}, err
	}
	return result, nil
}

func (c *Client) verify(ctx context.Context, params VerifyParams) (VerifyResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return VerifyResult{}, err
	}

	statusURL := c.endpoint("refund/status/" + url.PathEscape(params.MessageID))
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  http.MethodGet,
		URL:     statusURL,
		Headers: map[string]string{"Authorization": "Bearer " + token.AccessToken},
	})
	if err != nil {
		return VerifyResult{}, transport.Normalize(err)
	}
	raw, err := transport.DecodeObject(http.MethodGet, statusURL, res)
	if err != nil {
		return VerifyResult{}, err
	}

	rawStatus := core.RawStatus(core.LookupString(raw, "result", "data", "status"))
	return VerifyResult{
		Raw:        raw,
		RefundStep: core.RefundStep(core.LookupString(raw, "RefundStep")),
		Status:     core.RefundStatus(rawStatus),
		RawStatus:  rawStatus,
	}, nil
}
