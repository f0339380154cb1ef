package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

const OperationGenerateAccessToken = "generate_access_token"

type TokenRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Key      string `json:"key" validate:"required"`
	Secret   string `json:"secret" validate:"required"`
}

// CredentialBroker exchanges client credentials for a bearer token. Every
// call performs a fresh exchange; tokens are never cached.
type CredentialBroker struct {
	transport core.TransportAdapter
	telemetry core.Telemetry
}

func NewCredentialBroker(adapter core.TransportAdapter, telemetry core.Telemetry) *CredentialBroker {
	if adapter == nil {
		adapter = transport.NewRESTAdapter(nil)
	}
	return &CredentialBroker{transport: adapter, telemetry: telemetry}
}

func (b *CredentialBroker) GenerateAccessToken(ctx context.Context, req TokenRequest) (core.AccessToken, error) {
	if b == nil || b.transport == nil {
		return core.AccessToken{}, core.NewDependencyError("auth: credential broker is not configured")
	}
	if err := core.ValidateStruct("auth: invalid token request", req); err != nil {
		return core.AccessToken{}, err
	}

	tokenURL := strings.TrimRight(strings.TrimSpace(req.Endpoint), "/") + "/token"
	fields := map[string]any{"endpoint": tokenURL}
	startedAt := b.telemetry.Start(ctx, OperationGenerateAccessToken, fields)

	token, err := b.exchange(ctx, tokenURL, req)
	if err != nil {
		err = core.NewOperationError(core.MessageTokenFailed, err)
	}
	b.telemetry.Observe(ctx, startedAt, OperationGenerateAccessToken, err, fields)
	if err != nil {
		return core.AccessToken{}, err
	}
	return token, nil
}

func (b *CredentialBroker) exchange(ctx context.Context, tokenURL string, req TokenRequest) (core.AccessToken, error) {
	res, err := b.transport.Do(ctx, core.TransportRequest{
		Method: http.MethodPost,
		URL:    tokenURL,
		Headers: map[string]string{
			"Content-Type":  "application/x-www-form-urlencoded",
			"Authorization": "Basic " + Hash(req.Key, req.Secret),
		},
		Body: []byte(EncodeForm(FormField{Key: "grant_type", Value: "client_credentials"})),
	})
	if err != nil {
		return core.AccessToken{}, transport.Normalize(err)
	}

	var token core.AccessToken
	if err := json.Unmarshal(res.Body, &token); err != nil {
		return core.AccessToken{}, transport.MalformedResponse(http.MethodPost, tokenURL, res, err)
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return core.AccessToken{}, transport.MalformedResponse(http.MethodPost, tokenURL, res, errors.New("access_token missing from token response"))
	}
	return token, nil
}
