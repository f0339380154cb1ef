package cashin

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

// VerifyCashIn reads the payment status for a pay token. Unrecognized provider
// statuses are reported as failed.
func (c *Client) VerifyCashIn(ctx context.Context, params VerifyParams) (VerifyResult, error) {
	if err := c.ready(); err != nil {
		return VerifyResult{}, err
	}
	if err := core.ValidateStruct("cashin: invalid verify params", params); err != nil {
		return VerifyResult{}, err
	}

	fields := map[string]any{
		"request_id": c.requestID(),
		"pay_token":  params.PayToken,
	}
	startedAt := c.telemetry.Start(ctx, OperationVerifyCashIn, fields)

	result, err := c.verify(ctx, params)
	if err == nil {
		fields["canonical_status"] = string(result.Status)
		fields["raw_status"] = string(result.RawStatus)
	}
	c.telemetry.Observe(ctx, startedAt, OperationVerifyCashIn, err, fields)
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

	statusURL := c.endpoint("paymentstatus", url.PathEscape(params.PayToken))
	res, err := c.transport.Do(ctx, core.TransportRequest{
		Method:  http.MethodGet,
		URL:     statusURL,
		Headers: c.headers(token),
	})
	if err != nil {
		return VerifyResult{}, transport.Normalize(err)
	}
	raw, err := transport.DecodeObject(http.MethodGet, statusURL, res)
	if err != nil {
		return VerifyResult{}, err
	}

	rawStatus := core.RawStatus(core.LookupString(raw, "data", "status"))
	return VerifyResult{
		Raw:       raw,
		Status:    core.CashInStatus(rawStatus),
		RawStatus: rawStatus,
	}, nil
}
