package adapters_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-command"
	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-mobile-money/adapters/gocommand"
	"github.com/goliatone/go-mobile-money/adapters/gojob"
	"github.com/goliatone/go-mobile-money/adapters/gologger"
	mmprometheus "github.com/goliatone/go-mobile-money/adapters/prometheus"
	mmcommand "github.com/goliatone/go-mobile-money/command"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/devkit"
	"github.com/goliatone/go-mobile-money/refund"
)

func TestRuntimeCompatibility_RefundDispatchThenQueuedVerification(t *testing.T) {
	ctx := context.Background()

	logger := &compatLogger{}
	provider := &compatProvider{logger: logger}
	_, _, jobProvider, jobLogger := gologger.ResolveForJob("mobilemoney", provider, nil)
	if jobProvider == nil || jobLogger == nil {
		t.Fatalf("expected go-job logger bridges")
	}

	recorder, err := mmprometheus.NewRecorder(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new prometheus recorder: %v", err)
	}

	fake := devkit.NewFakeTransportAdapter("rest",
		devkit.TokenResponse("refund"),
		devkit.JSONResponse(map[string]any{"MessageId": "MSG-1"}),
		devkit.TokenResponse("verify"),
		devkit.JSONResponse(map[string]any{
			"RefundStep": "2",
			"result":     map[string]any{"data": map[string]any{"status": "SUCCESSFULL"}},
		}),
	)
	options := append(
		gologger.ClientOptions("mobilemoney", provider, nil),
		core.WithTransport(fake),
		core.WithMetricsRecorder(recorder),
	)
	client, err := refund.NewClient(core.RefundConfig{
		ClientID:          "client",
		ClientSecret:      "secret",
		CustomerKey:       "key",
		CustomerSecret:    "customer-secret",
		ChannelUserMSISDN: "699947943",
		PIN:               "1234",
	}, core.EnvironmentProd, options...)
	if err != nil {
		t.Fatalf("new refund client: %v", err)
	}

	adapter := gocommand.NewRegistryAdapter(command.NewRegistry())
	queueRegistry := jobqueuecommand.NewRegistry()
	if err := adapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	subscriptions, err := gocommand.RegisterHandlers(adapter, gocommand.Handlers{
		Refund: mmcommand.NewRefundCommand(client),
	})
	if err != nil {
		t.Fatalf("register handlers: %v", err)
	}
	defer func() {
		for _, subscription := range subscriptions {
			subscription.Unsubscribe()
		}
	}()
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if _, ok := queueRegistry.Get(mmcommand.TypeRefund); !ok {
		t.Fatalf("expected refund command to be mirrored into the go-job queue registry")
	}

	result, err := gocommand.DispatchRefund(ctx, refund.Params{
		Webhook:       "https://example.com/refunds",
		Amount:        1000,
		CustomerPhone: "699947943",
		CustomerName:  "Jane Doe",
	})
	if err != nil {
		t.Fatalf("dispatch refund: %v", err)
	}

	enqueueProbe := &compatQueue{}
	if err := gojob.NewEnqueuerAdapter(enqueueProbe).EnqueueRefundVerification(ctx, result.MessageID); err != nil {
		t.Fatalf("enqueue refund verification: %v", err)
	}

	workerLogger, hook := gologger.WorkerLogging("mobilemoney.worker", provider, nil)
	if hook == nil {
		t.Fatalf("expected go-job logging hook")
	}
	var outcome gojob.Outcome
	w := gojob.NewVerificationWorker(nil, client, workerLogger, gojob.WithOutcomeHandler(func(_ context.Context, got gojob.Outcome) {
		outcome = got
	}))
	delivery := enqueueProbe.delivery()
	if err := w.Handle(ctx, delivery); err != nil {
		t.Fatalf("handle verification: %v", err)
	}
	if !delivery.acked {
		t.Fatalf("expected settled refund to be acked")
	}
	if outcome.Status != core.StatusSucceeded || outcome.Reference != "MSG-1" {
		t.Fatalf("unexpected outcome %#v", outcome)
	}
	if fake.Calls() != 4 {
		t.Fatalf("expected four outbound calls, got %d", fake.Calls())
	}
	if logger.infos == 0 {
		t.Fatalf("expected client and worker logs through the shared provider")
	}
}

type compatQueue struct {
	last *job.ExecutionMessage
}

func (q *compatQueue) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	q.last = msg
	return nil
}

func (q *compatQueue) delivery() *compatDelivery {
	return &compatDelivery{msg: q.last}
}

type compatDelivery struct {
	msg   *job.ExecutionMessage
	acked bool
}

func (d *compatDelivery) Message() *job.ExecutionMessage { return d.msg }

func (d *compatDelivery) Ack(context.Context) error {
	d.acked = true
	return nil
}

func (d *compatDelivery) Nack(context.Context, queue.NackOptions) error { return nil }

type compatProvider struct {
	logger glog.Logger
}

func (p *compatProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type compatLogger struct {
	infos int
}

func (*compatLogger) Trace(string, ...any)                      {}
func (*compatLogger) Debug(string, ...any)                      {}
func (l *compatLogger) Info(string, ...any)                     { l.infos++ }
func (*compatLogger) Warn(string, ...any)                       {}
func (*compatLogger) Error(string, ...any)                      {}
func (*compatLogger) Fatal(string, ...any)                      {}
func (l *compatLogger) WithContext(context.Context) glog.Logger { return l }
