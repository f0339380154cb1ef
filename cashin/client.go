package cashin

import (
	"context"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/auth"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

const (
	OperationInitiateTransaction = "initiate_transaction"
	OperationInitializeCashIn    = "initialize_cash_in"
	OperationVerifyCashIn        = "verify_cash_in"
)

const apiBasePath = "/omcoreapis/1.0.2/mp"

// Client drives the Orange Money USSD payment API. It holds immutable
// configuration only and is safe for concurrent use.
type Client struct {
	config      core.CashInConfig
	environment core.Environment
	host        string
	transport   core.TransportAdapter
	broker      *auth.CredentialBroker
	telemetry   core.Telemetry
	requestID   func() string
}

func NewClient(cfg core.CashInConfig, env core.Environment, opts ...core.Option) (*Client, error) {
	return NewClientWithDependencies(cfg, env, core.ResolveDependencies(opts...))
}

func NewClientWithDependencies(cfg core.CashInConfig, env core.Environment, deps core.Dependencies) (*Client, error) {
	if env == "" {
		env = core.EnvironmentDev
	}
	if err := validateConfig(cfg, env); err != nil {
		return nil, err
	}
	adapter := deps.Transport
	if adapter == nil {
		adapter = transport.NewRESTAdapter(nil)
	}
	requestID := deps.RequestIDGenerator
	if requestID == nil {
		requestID = func() string { return "" }
	}
	telemetry := deps.Telemetry(core.ProviderOrangeMoney)
	return &Client{
		config:      cfg,
		environment: env,
		host:        cfg.ResolveHost(env),
		transport:   adapter,
		broker:      auth.NewCredentialBroker(adapter, telemetry),
		telemetry:   telemetry,
		requestID:   requestID,
	}, nil
}

func validateConfig(cfg core.CashInConfig, env core.Environment) error {
	err := cfg.Validate()
	if env.Valid() {
		return err
	}
	fields := []goerrors.FieldError{}
	if validationErr, ok := core.AsValidationError(err); ok {
		fields = append(fields, validationErr.Fields...)
	}
	fields = append(fields, goerrors.FieldError{Field: "environment", Message: "must be one of dev prod"})
	return core.NewValidationError("mobilemoney: invalid cash in configuration", fields...)
}

// ProviderHost is the base URL every cash in call is sent to.
func (c *Client) ProviderHost() string {
	if c == nil {
		return ""
	}
	return c.host
}

func (c *Client) Environment() core.Environment {
	if c == nil {
		return ""
	}
	return c.environment
}

func (c *Client) ready() error {
	if c == nil || c.transport == nil || c.broker == nil {
		return core.NewDependencyError("cashin: client is not configured")
	}
	return nil
}

func (c *Client) accessToken(ctx context.Context) (core.AccessToken, error) {
	token, err := c.broker.GenerateAccessToken(ctx, auth.TokenRequest{
		Endpoint: c.host,
		Key:      c.config.CustomerKey,
		Secret:   c.config.CustomerSecret,
	})
	// A rejected token request is still a token stage failure.
	if validationErr, ok := core.AsValidationError(err); ok {
		return core.AccessToken{}, core.NewOperationError(core.MessageTokenFailed, validationErr)
	}
	return token, err
}

func (c *Client) headers(token core.AccessToken) map[string]string {
	return map[string]string{
		"X-AUTH-TOKEN":  c.config.XAuthToken,
		"Authorization": "Bearer " + token.AccessToken,
	}
}

func (c *Client) endpoint(parts ...string) string {
	return c.host + apiBasePath + "/" + strings.Join(parts, "/")
}

var errPayTokenMissing = errors.New("pay token missing from init response")
