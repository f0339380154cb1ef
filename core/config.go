package core

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	DevProviderHost        = "https://mockapi.taurs.dev/karibu-cap/orange_money_apis"
	ProdProviderHost       = "https://api-s1.orange.cm"
	DefaultRefundAPIHost   = "https://omapi.ynote.africa"
	DefaultRefundTokenHost = "https://omapi-token.ynote.africa/oauth2"
)

type CashInConfig struct {
	CustomerKey    string `koanf:"customer_key" mapstructure:"customer_key" validate:"required"`
	CustomerSecret string `koanf:"customer_secret" mapstructure:"customer_secret" validate:"required"`
	XAuthToken     string `koanf:"x_auth_token" mapstructure:"x_auth_token" validate:"required"`
	MerchantNumber string `koanf:"merchant_number" mapstructure:"merchant_number" validate:"required,msisdn"`
	PIN            string `koanf:"pin" mapstructure:"pin" validate:"required,numeric"`
	// ProviderHost overrides the environment host when set.
	ProviderHost string `koanf:"provider_host" mapstructure:"provider_host" validate:"omitempty,url"`
}

func (c CashInConfig) Configured() bool {
	return strings.TrimSpace(c.CustomerKey) != "" ||
		strings.TrimSpace(c.CustomerSecret) != "" ||
		strings.TrimSpace(c.XAuthToken) != "" ||
		strings.TrimSpace(c.MerchantNumber) != "" ||
		strings.TrimSpace(c.PIN) != "" ||
		strings.TrimSpace(c.ProviderHost) != ""
}

func (c CashInConfig) Validate() error {
	return ValidateStruct("mobilemoney: invalid cash in configuration", c)
}

// ResolveHost returns ProviderHost when set, otherwise the host for env.
func (c CashInConfig) ResolveHost(env Environment) string {
	if host := strings.TrimSpace(c.ProviderHost); host != "" {
		return strings.TrimRight(host, "/")
	}
	if env == EnvironmentProd {
		return ProdProviderHost
	}
	return DevProviderHost
}

type RefundConfig struct {
	ClientID          string `koanf:"client_id" mapstructure:"client_id" validate:"required"`
	ClientSecret      string `koanf:"client_secret" mapstructure:"client_secret" validate:"required"`
	CustomerKey       string `koanf:"customer_key" mapstructure:"customer_key" validate:"required"`
	CustomerSecret    string `koanf:"customer_secret" mapstructure:"customer_secret" validate:"required"`
	ChannelUserMSISDN string `koanf:"channel_user_msisdn" mapstructure:"channel_user_msisdn" validate:"required,msisdn"`
	PIN               string `koanf:"pin" mapstructure:"pin" validate:"required,numeric"`
	APIHost           string `koanf:"api_host" mapstructure:"api_host" validate:"omitempty,url"`
	TokenHost         string `koanf:"token_host" mapstructure:"token_host" validate:"omitempty,url"`
}

func (c RefundConfig) Configured() bool {
	return strings.TrimSpace(c.ClientID) != "" ||
		strings.TrimSpace(c.ClientSecret) != "" ||
		strings.TrimSpace(c.CustomerKey) != "" ||
		strings.TrimSpace(c.CustomerSecret) != "" ||
		strings.TrimSpace(c.ChannelUserMSISDN) != "" ||
		strings.TrimSpace(c.PIN) != ""
}

func (c RefundConfig) Validate() error {
	return ValidateStruct("mobilemoney: invalid refund configuration", c)
}

func (c RefundConfig) ResolveAPIHost() string {
	if host := strings.TrimSpace(c.APIHost); host != "" {
		return strings.TrimRight(host, "/")
	}
	return DefaultRefundAPIHost
}

func (c RefundConfig) ResolveTokenHost() string {
	if host := strings.TrimSpace(c.TokenHost); host != "" {
		return strings.TrimRight(host, "/")
	}
	return DefaultRefundTokenHost
}

type Config struct {
	ServiceName string       `koanf:"service_name" mapstructure:"service_name"`
	Environment Environment  `koanf:"environment" mapstructure:"environment"`
	CashIn      CashInConfig `koanf:"cash_in" mapstructure:"cash_in"`
	Refund      RefundConfig `koanf:"refund" mapstructure:"refund"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "mobilemoney",
		Environment: EnvironmentDev,
	}
}

// Validate checks the top level settings and every section that carries at
// least one value.
func (c Config) Validate() error {
	var fields []goerrors.FieldError
	if strings.TrimSpace(c.ServiceName) == "" {
		fields = append(fields, goerrors.FieldError{Field: "service_name", Message: "is required"})
	}
	if !c.Environment.Valid() {
		fields = append(fields, goerrors.FieldError{Field: "environment", Message: "must be one of dev prod"})
	}
	if c.CashIn.Configured() {
		fields = appendSectionFields(fields, "cash_in", c.CashIn.Validate())
	}
	if c.Refund.Configured() {
		fields = appendSectionFields(fields, "refund", c.Refund.Validate())
	}
	if len(fields) > 0 {
		return NewValidationError("mobilemoney: invalid configuration", fields...)
	}
	return nil
}

func appendSectionFields(fields []goerrors.FieldError, section string, err error) []goerrors.FieldError {
	if err == nil {
		return fields
	}
	validationErr, ok := AsValidationError(err)
	if !ok {
		return append(fields, goerrors.FieldError{Field: section, Message: err.Error()})
	}
	for _, field := range validationErr.Fields {
		fields = append(fields, goerrors.FieldError{Field: section + "." + field.Field, Message: field.Message})
	}
	return fields
}
