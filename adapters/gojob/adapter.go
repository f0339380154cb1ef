package gojob

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	"github.com/goliatone/go-job/queue/worker"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/query"
	"github.com/goliatone/go-mobile-money/refund"
)

const (
	JobIDCashInVerify = "mobilemoney.cashin.verify"
	JobIDRefundVerify = "mobilemoney.refund.verify"
)

const (
	ParamPayToken  = "pay_token"
	ParamMessageID = "message_id"
)

const defaultPollDelay = 30 * time.Second

// RetryPolicy bounds how often a pending verification is put back on the
// queue.
type RetryPolicy struct {
	MaxAttempts     int
	MaxDelay        time.Duration
	DeadLetterOnMax bool
}

// NormalizeAttempt applies the policy bounds to a nack for the given attempt.
func (p RetryPolicy) NormalizeAttempt(opts queue.NackOptions, attempt int) queue.NackOptions {
	out := opts
	out.Reason = strings.TrimSpace(out.Reason)
	if out.Delay < 0 {
		out.Delay = 0
	}
	if p.MaxDelay > 0 && out.Delay > p.MaxDelay {
		out.Delay = p.MaxDelay
	}
	if out.DeadLetter {
		out.Requeue = false
	}
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		out.Requeue = false
		if p.DeadLetterOnMax || out.DeadLetter {
			out.DeadLetter = true
		}
	}
	if !out.Requeue && !out.DeadLetter {
		out.Requeue = true
	}
	return out
}

// CashInVerificationMessage builds the execution message that polls a cash
// in until it settles.
func CashInVerificationMessage(payToken string) *job.ExecutionMessage {
	payToken = strings.TrimSpace(payToken)
	return &job.ExecutionMessage{
		JobID:          JobIDCashInVerify,
		ScriptPath:     JobIDCashInVerify,
		Parameters:     map[string]any{ParamPayToken: payToken},
		IdempotencyKey: JobIDCashInVerify + ":" + payToken,
		DedupPolicy:    job.DeduplicationPolicy("drop"),
	}
}

func RefundVerificationMessage(messageID string) *job.ExecutionMessage {
	messageID = strings.TrimSpace(messageID)
	return &job.ExecutionMessage{
		JobID:          JobIDRefundVerify,
		ScriptPath:     JobIDRefundVerify,
		Parameters:     map[string]any{ParamMessageID: messageID},
		IdempotencyKey: JobIDRefundVerify + ":" + messageID,
		DedupPolicy:    job.DeduplicationPolicy("drop"),
	}
}

type EnqueuerAdapter struct {
	enqueuer queue.Enqueuer
}

func NewEnqueuerAdapter(enqueuer queue.Enqueuer) *EnqueuerAdapter {
	return &EnqueuerAdapter{enqueuer: enqueuer}
}

func (a *EnqueuerAdapter) EnqueueCashInVerification(ctx context.Context, payToken string) error {
	if strings.TrimSpace(payToken) == "" {
		return fmt.Errorf("gojob: pay token is required")
	}
	return a.enqueue(ctx, CashInVerificationMessage(payToken))
}

func (a *EnqueuerAdapter) EnqueueRefundVerification(ctx context.Context, messageID string) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("gojob: message id is required")
	}
	return a.enqueue(ctx, RefundVerificationMessage(messageID))
}

func (a *EnqueuerAdapter) enqueue(ctx context.Context, msg *job.ExecutionMessage) error {
	if a == nil || a.enqueuer == nil {
		return fmt.Errorf("gojob: enqueuer is not configured")
	}
	return a.enqueuer.Enqueue(ctx, msg)
}

// Outcome is reported once per handled delivery.
type Outcome struct {
	JobID     string
	Reference string
	Attempt   int
	Status    core.Status
	RawStatus core.RawStatus
	Err       error
	Acked     bool
}

type WorkerOption func(*VerificationWorker)

func WithPollDelay(delay time.Duration) WorkerOption {
	return func(w *VerificationWorker) {
		if delay > 0 {
			w.pollDelay = delay
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) WorkerOption {
	return func(w *VerificationWorker) {
		w.policy = policy
	}
}

func WithLogger(logger glog.Logger) WorkerOption {
	return func(w *VerificationWorker) {
		w.logger = glog.Ensure(logger)
	}
}

// WithOutcomeHandler receives every outcome, typically to notify the
// merchant once a payment or refund settles.
func WithOutcomeHandler(handler func(context.Context, Outcome)) WorkerOption {
	return func(w *VerificationWorker) {
		w.onOutcome = handler
	}
}

// VerificationWorker runs exactly one verification per delivery. Settled
// results are acked; pending or unknown ones are nacked with the poll delay
// so the queue redelivers them later.
type VerificationWorker struct {
	cashIn    query.CashInVerifier
	refund    query.RefundVerifier
	pollDelay time.Duration
	policy    RetryPolicy
	logger    glog.Logger
	onOutcome func(context.Context, Outcome)

	mu       sync.Mutex
	attempts map[string]int
}

func NewVerificationWorker(
	cashIn query.CashInVerifier,
	refundVerifier query.RefundVerifier,
	opts ...WorkerOption,
) *VerificationWorker {
	w := &VerificationWorker{
		cashIn:    cashIn,
		refund:    refundVerifier,
		pollDelay: defaultPollDelay,
		logger:    glog.Nop(),
		attempts:  map[string]int{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Handle verifies the delivery's transaction and settles the delivery.
func (w *VerificationWorker) Handle(ctx context.Context, delivery queue.Delivery) error {
	if w == nil {
		return fmt.Errorf("gojob: verification worker is not configured")
	}
	if delivery == nil {
		return fmt.Errorf("gojob: delivery is required")
	}
	msg := delivery.Message()
	if msg == nil {
		return delivery.Nack(ctx, queue.NackOptions{DeadLetter: true, Reason: "missing execution message"})
	}

	key := attemptKey(msg)
	attempt := w.nextAttempt(key)
	outcome := w.verify(ctx, msg)
	outcome.Attempt = attempt

	var err error
	switch {
	case outcome.Err != nil && isPermanent(outcome.Err):
		err = delivery.Nack(ctx, queue.NackOptions{DeadLetter: true, Reason: outcome.Err.Error()})
		w.forget(key)
	case outcome.Err != nil:
		err = delivery.Nack(ctx, w.policy.NormalizeAttempt(queue.NackOptions{
			Delay:   w.pollDelay,
			Requeue: true,
			Reason:  outcome.Err.Error(),
		}, attempt))
	case settled(outcome.Status):
		outcome.Acked = true
		err = delivery.Ack(ctx)
		w.forget(key)
	default:
		nack := w.policy.NormalizeAttempt(queue.NackOptions{
			Delay:   w.pollDelay,
			Requeue: true,
			Reason:  "status " + string(outcome.Status),
		}, attempt)
		if !nack.Requeue {
			w.forget(key)
		}
		err = delivery.Nack(ctx, nack)
	}

	w.logOutcome(ctx, outcome)
	if w.onOutcome != nil {
		w.onOutcome(ctx, outcome)
	}
	return err
}

// Run dequeues and handles deliveries until ctx is done or the dequeuer
// fails.
func (w *VerificationWorker) Run(ctx context.Context, dequeuer queue.Dequeuer) error {
	if dequeuer == nil {
		return fmt.Errorf("gojob: dequeuer is required")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		delivery, err := dequeuer.Dequeue(ctx)
		if err != nil {
			return err
		}
		if delivery == nil {
			continue
		}
		if err := w.Handle(ctx, delivery); err != nil {
			return err
		}
	}
}

func (w *VerificationWorker) verify(ctx context.Context, msg *job.ExecutionMessage) Outcome {
	outcome := Outcome{JobID: strings.TrimSpace(msg.JobID)}
	switch outcome.JobID {
	case JobIDCashInVerify:
		outcome.Reference = stringParam(msg.Parameters, ParamPayToken)
		if w.cashIn == nil {
			outcome.Err = core.NewDependencyError("gojob: cash in verifier is not configured")
			return outcome
		}
		result, err := w.cashIn.VerifyCashIn(ctx, cashin.VerifyParams{PayToken: outcome.Reference})
		outcome.Status, outcome.RawStatus, outcome.Err = result.Status, result.RawStatus, err
	case JobIDRefundVerify:
		outcome.Reference = stringParam(msg.Parameters, ParamMessageID)
		if w.refund == nil {
			outcome.Err = core.NewDependencyError("gojob: refund verifier is not configured")
			return outcome
		}
		result, err := w.refund.VerifyRefund(ctx, refund.VerifyParams{MessageID: outcome.Reference})
		outcome.Status, outcome.RawStatus, outcome.Err = result.Status, result.RawStatus, err
	default:
		outcome.Err = core.NewValidationError("gojob: unsupported job", goerrors.FieldError{
			Field:   "job_id",
			Message: "unsupported job " + outcome.JobID,
		})
	}
	return outcome
}

func (w *VerificationWorker) logOutcome(ctx context.Context, outcome Outcome) {
	logger := w.logger
	if logger == nil {
		return
	}
	logger = logger.WithContext(ctx)
	fields := []any{
		"job_id", outcome.JobID,
		"attempt", outcome.Attempt,
		"canonical_status", string(outcome.Status),
		"raw_status", string(outcome.RawStatus),
		"acked", outcome.Acked,
	}
	if outcome.Err != nil {
		logger.Error("verification failed", append(fields, "error", outcome.Err.Error())...)
		return
	}
	logger.Info("verification handled", fields...)
}

func (w *VerificationWorker) nextAttempt(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attempts[key]++
	return w.attempts[key]
}

func (w *VerificationWorker) forget(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.attempts, key)
}

func attemptKey(msg *job.ExecutionMessage) string {
	if key := strings.TrimSpace(msg.IdempotencyKey); key != "" {
		return key
	}
	return strings.TrimSpace(msg.JobID) + ":" + fmt.Sprint(msg.Parameters)
}

func settled(status core.Status) bool {
	return status == core.StatusSucceeded || status == core.StatusFailed
}

// isPermanent reports failures a redelivery cannot fix.
func isPermanent(err error) bool {
	if _, ok := core.AsValidationError(err); ok {
		return true
	}
	envelope := core.ToServiceError(err)
	return envelope != nil && envelope.TextCode == core.ServiceErrorInternal
}

func stringParam(params map[string]any, key string) string {
	value, ok := params[key]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

// LoggingHook reports go-job worker events through a glog logger.
type LoggingHook struct {
	logger glog.Logger
}

func NewLoggingHook(logger glog.Logger) *LoggingHook {
	return &LoggingHook{logger: glog.Ensure(logger)}
}

func (h *LoggingHook) OnStart(ctx context.Context, event worker.Event) {
	h.log(ctx, "debug", "job started", event)
}

func (h *LoggingHook) OnSuccess(ctx context.Context, event worker.Event) {
	h.log(ctx, "info", "job succeeded", event)
}

func (h *LoggingHook) OnFailure(ctx context.Context, event worker.Event) {
	h.log(ctx, "error", "job failed", event)
}

func (h *LoggingHook) OnRetry(ctx context.Context, event worker.Event) {
	h.log(ctx, "info", "job retry scheduled", event)
}

func (h *LoggingHook) log(ctx context.Context, level string, message string, event worker.Event) {
	if h == nil || h.logger == nil {
		return
	}
	logger := h.logger.WithContext(ctx)
	args := eventFields(event)
	switch level {
	case "debug":
		logger.Debug(message, args...)
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func eventFields(event worker.Event) []any {
	msg := event.Message
	if msg == nil && event.Delivery != nil {
		msg = event.Delivery.Message()
	}
	fields := []any{
		"attempt", event.Attempt,
		"delay_ms", event.Delay.Milliseconds(),
		"duration_ms", event.Duration.Milliseconds(),
	}
	if msg != nil {
		fields = append(fields, "job_id", strings.TrimSpace(msg.JobID))
		redacted := core.RedactSensitiveMap(msg.Parameters)
		for _, key := range []string{ParamPayToken, ParamMessageID} {
			if value, ok := redacted[key]; ok {
				fields = append(fields, key, value)
			}
		}
	}
	if event.Err != nil {
		fields = append(fields, "error", event.Err.Error())
	}
	return fields
}

var (
	_ worker.Hook = (*LoggingHook)(nil)
)
