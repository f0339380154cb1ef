package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
	"github.com/google/uuid"
)

const defaultLoggerName = "mobilemoney"

type clientBuilder struct {
	loggerName         string
	logger             Logger
	loggerProvider     LoggerProvider
	metricsRecorder    MetricsRecorder
	transport          TransportAdapter
	configProvider     ConfigProvider
	optionsResolver    OptionsResolver
	requestIDGenerator func() string
	clock              func() time.Time
}

type Option func(*clientBuilder)

func WithLogger(logger Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithLoggerName(name string) Option {
	return func(b *clientBuilder) {
		b.loggerName = strings.TrimSpace(name)
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

// WithTransport replaces the HTTP adapter used for every outbound call.
func WithTransport(transport TransportAdapter) Option {
	return func(b *clientBuilder) {
		b.transport = transport
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *clientBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *clientBuilder) {
		b.optionsResolver = resolver
	}
}

func WithRequestIDGenerator(generator func() string) Option {
	return func(b *clientBuilder) {
		b.requestIDGenerator = generator
	}
}

func WithClock(clock func() time.Time) Option {
	return func(b *clientBuilder) {
		b.clock = clock
	}
}

// Dependencies is the resolved set of collaborators shared by the clients.
// Transport is nil unless one was supplied.
type Dependencies struct {
	Logger             Logger
	LoggerProvider     LoggerProvider
	MetricsRecorder    MetricsRecorder
	Transport          TransportAdapter
	ConfigProvider     ConfigProvider
	OptionsResolver    OptionsResolver
	RequestIDGenerator func() string
	Clock              func() time.Time
}

func ResolveDependencies(options ...Option) Dependencies {
	builder := clientBuilder{
		loggerName:         defaultLoggerName,
		metricsRecorder:    NopMetricsRecorder{},
		configProvider:     NewCfgxConfigProvider(nil),
		optionsResolver:    GoOptionsResolver{},
		requestIDGenerator: uuid.NewString,
		clock:              time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}
	if builder.loggerName == "" {
		builder.loggerName = defaultLoggerName
	}

	provider, logger := glog.Resolve(builder.loggerName, builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil && builder.logger == nil {
		if named := provider.GetLogger(builder.loggerName); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.requestIDGenerator == nil {
		builder.requestIDGenerator = uuid.NewString
	}
	if builder.clock == nil {
		builder.clock = time.Now
	}

	return Dependencies{
		Logger:             logger,
		LoggerProvider:     provider,
		MetricsRecorder:    builder.metricsRecorder,
		Transport:          builder.transport,
		ConfigProvider:     builder.configProvider,
		OptionsResolver:    builder.optionsResolver,
		RequestIDGenerator: builder.requestIDGenerator,
		Clock:              builder.clock,
	}
}

// Telemetry builds the operation observer for one provider.
func (d Dependencies) Telemetry(provider ProviderID) Telemetry {
	return Telemetry{
		Logger:   d.Logger,
		Metrics:  d.MetricsRecorder,
		Provider: provider,
		Clock:    d.Clock,
	}
}

// ResolveConfig layers defaults, loaded configuration and runtime values.
func ResolveConfig(ctx context.Context, runtime Config, deps Dependencies) (Config, error) {
	provider := deps.ConfigProvider
	if provider == nil {
		provider = NewCfgxConfigProvider(nil)
	}
	resolver := deps.OptionsResolver
	if resolver == nil {
		resolver = GoOptionsResolver{}
	}
	defaults := DefaultConfig()
	loaded, err := provider.Load(ctx, defaults)
	if err != nil {
		return Config{}, err
	}
	return resolver.Resolve(defaults, loaded, runtime)
}

type StaticRawConfigLoader struct {
	Values map[string]any
}

func (l StaticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = StaticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	putString(layer, "service_name", cfg.ServiceName, includeZero)
	putString(layer, "environment", string(cfg.Environment), includeZero)

	cashIn := map[string]any{}
	putString(cashIn, "customer_key", cfg.CashIn.CustomerKey, includeZero)
	putString(cashIn, "customer_secret", cfg.CashIn.CustomerSecret, includeZero)
	putString(cashIn, "x_auth_token", cfg.CashIn.XAuthToken, includeZero)
	putString(cashIn, "merchant_number", cfg.CashIn.MerchantNumber, includeZero)
	putString(cashIn, "pin", cfg.CashIn.PIN, includeZero)
	putString(cashIn, "provider_host", cfg.CashIn.ProviderHost, includeZero)
	if len(cashIn) > 0 {
		layer["cash_in"] = cashIn
	}

	refund := map[string]any{}
	putString(refund, "client_id", cfg.Refund.ClientID, includeZero)
	putString(refund, "client_secret", cfg.Refund.ClientSecret, includeZero)
	putString(refund, "customer_key", cfg.Refund.CustomerKey, includeZero)
	putString(refund, "customer_secret", cfg.Refund.CustomerSecret, includeZero)
	putString(refund, "channel_user_msisdn", cfg.Refund.ChannelUserMSISDN, includeZero)
	putString(refund, "pin", cfg.Refund.PIN, includeZero)
	putString(refund, "api_host", cfg.Refund.APIHost, includeZero)
	putString(refund, "token_host", cfg.Refund.TokenHost, includeZero)
	if len(refund) > 0 {
		layer["refund"] = refund
	}
	return layer
}

func putString(target map[string]any, key string, value string, includeZero bool) {
	if includeZero || strings.TrimSpace(value) != "" {
		target[key] = value
	}
}
