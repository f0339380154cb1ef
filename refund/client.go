package refund

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/auth"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

const (
	OperationRefund       = "refund"
	OperationVerifyRefund = "verify_refund"
)

// Client drives the Y-Note refund API. It holds immutable configuration only
// and is safe for concurrent use.
type Client struct {
	config      core.RefundConfig
	environment core.Environment
	apiHost     string
	tokenHost   string
	transport   core.TransportAdapter
	broker      *auth.CredentialBroker
	telemetry   core.Telemetry
	requestID   func() string
}

func NewClient(cfg core.RefundConfig, env core.Environment, opts ...core.Option) (*Client, error) {
	return NewClientWithDependencies(cfg, env, core.ResolveDependencies(opts...))
}

func NewClientWithDependencies(cfg core.RefundConfig, env core.Environment, deps core.Dependencies) (*Client, error) {
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
	telemetry := deps.Telemetry(core.ProviderYNote)
	return &Client{
		config:      cfg,
		environment: env,
		apiHost:     cfg.ResolveAPIHost(),
		tokenHost:   cfg.ResolveTokenHost(),
		transport:   adapter,
		broker:      auth.NewCredentialBroker(adapter, telemetry),
		telemetry:   telemetry,
		requestID:   requestID,
	}, nil
}

func validateConfig(cfg core.RefundConfig, env core.Environment) error {
	err := cfg.Validate()
	if env.Valid() {
		return err
	}
	fields := []goerrors.FieldError{}
	if validationErr, ok := core.AsValidationError(err); ok {
		fields = append(fields, validationErr.Fields...)
	}
	fields = append(fields, goerrors.FieldError{Field: "environment", Message: "must be one of dev prod"})
	return core.NewValidationError("mobilemoney: invalid refund configuration", fields...)
}

func (c *Client) Environment() core.Environment {
	if c == nil {
		return ""
	}
	return c.environment
}

// APIHost is the base URL refund and status calls are sent to.
func (c *Client) APIHost() string {
	if c == nil {
		return ""
	}
	return c.apiHost
}

func (c *Client) TokenHost() string {
	if c == nil {
		return ""
	}
	return c.tokenHost
}

func (c *Client) ready() error {
	if c == nil || c.transport == nil || c.broker == nil {
		return core.NewDependencyError("refund: client is not configured")
	}
	return nil
}

func (c *Client) accessToken(ctx context.Context) (core.AccessToken, error) {
	token, err := c.broker.GenerateAccessToken(ctx, auth.TokenRequest{
		Endpoint: c.tokenHost,
		Key:      c.config.ClientID,
		Secret:   c.config.ClientSecret,
	})
	if validationErr, ok := core.AsValidationError(err); ok {
		return core.AccessToken{}, core.NewOperationError(core.MessageTokenFailed, validationErr)
	}
	return token, err
}

// endpoint joins the api host, the environment segment and path.
func (c *Client) endpoint(path string) string {
	return c.apiHost + "/" + string(c.environment) + "/" + path
}
