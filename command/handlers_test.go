package command

import (
	"context"
	"errors"
	"testing"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/cashin"
	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/refund"
)

func TestInitializeCashInCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := cashin.InitializeResult{PayToken: "RANDOM_TOKEN", Status: core.StatusPending, RawStatus: core.RawStatusPending}
	called := false
	svc := stubCashInService{
		initializeFn: func(_ context.Context, params cashin.InitializeParams) (cashin.InitializeResult, error) {
			called = true
			if params.ReferenceID != "REFERENCE_ID" {
				t.Fatalf("expected reference REFERENCE_ID, got %q", params.ReferenceID)
			}
			return expected, nil
		},
	}

	cmd := NewInitializeCashInCommand(svc)
	collector := gocmd.NewResult[cashin.InitializeResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, InitializeCashInMessage{Params: cashin.InitializeParams{ReferenceID: "REFERENCE_ID"}})
	if err != nil {
		t.Fatalf("execute initialize cash in: %v", err)
	}
	if !called {
		t.Fatalf("expected cash in service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.PayToken != expected.PayToken || result.Status != expected.Status {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestRefundCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	svc := stubRefundService{
		refundFn: func(_ context.Context, params refund.Params) (refund.Result, error) {
			if params.Amount != 1000 {
				t.Fatalf("expected amount 1000, got %d", params.Amount)
			}
			return refund.Result{MessageID: "MSG-1"}, nil
		},
	}

	collector := gocmd.NewResult[refund.Result]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	if err := NewRefundCommand(svc).Execute(ctx, RefundMessage{Params: refund.Params{Amount: 1000}}); err != nil {
		t.Fatalf("execute refund: %v", err)
	}
	result, ok := collector.Load()
	if !ok || result.MessageID != "MSG-1" {
		t.Fatalf("unexpected stored result: %#v %v", result, ok)
	}
}

func TestCommands_ExecuteWithoutCollector(t *testing.T) {
	svc := stubRefundService{
		refundFn: func(context.Context, refund.Params) (refund.Result, error) {
			return refund.Result{MessageID: "MSG-1"}, nil
		},
	}
	if err := NewRefundCommand(svc).Execute(context.Background(), RefundMessage{}); err != nil {
		t.Fatalf("execute refund without collector: %v", err)
	}
}

func TestCommands_PropagateServiceErrors(t *testing.T) {
	stageErr := core.NewOperationError(core.MessageCashInFailed, core.NewConfigFailed("bad url", nil))
	svc := stubCashInService{
		initializeFn: func(context.Context, cashin.InitializeParams) (cashin.InitializeResult, error) {
			return cashin.InitializeResult{}, stageErr
		},
	}
	collector := gocmd.NewResult[cashin.InitializeResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := NewInitializeCashInCommand(svc).Execute(ctx, InitializeCashInMessage{})
	if !errors.Is(err, stageErr) {
		t.Fatalf("expected stage error, got %v", err)
	}
	if _, ok := collector.Load(); ok {
		t.Fatalf("expected no stored result on failure")
	}
}

func TestInitializeCashInMessage_ValidateReturnsRichError(t *testing.T) {
	err := (InitializeCashInMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ServiceErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorBadInput, rich.TextCode)
	}
	if validation := rich.AllValidationErrors(); len(validation) != 5 {
		t.Fatalf("expected 5 field errors, got %d", len(validation))
	}
}

func TestRefundMessage_Validate(t *testing.T) {
	valid := RefundMessage{Params: refund.Params{
		Webhook:       "https://example.com/refunds",
		Amount:        1000,
		CustomerPhone: "237699947943",
		CustomerName:  "Jane Doe",
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid refund message, got %v", err)
	}
	if err := (RefundMessage{}).Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestCommands_NilServiceReturnsRichError(t *testing.T) {
	var cmd *InitializeCashInCommand
	err := cmd.Execute(context.Background(), InitializeCashInMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}

	if err := NewRefundCommand(nil).Execute(context.Background(), RefundMessage{}); err == nil {
		t.Fatalf("expected refund dependency error")
	}
}

type stubCashInService struct {
	initializeFn func(ctx context.Context, params cashin.InitializeParams) (cashin.InitializeResult, error)
}

func (s stubCashInService) InitializeCashIn(ctx context.Context, params cashin.InitializeParams) (cashin.InitializeResult, error) {
	if s.initializeFn == nil {
		return cashin.InitializeResult{}, nil
	}
	return s.initializeFn(ctx, params)
}

type stubRefundService struct {
	refundFn func(ctx context.Context, params refund.Params) (refund.Result, error)
}

func (s stubRefundService) Refund(ctx context.Context, params refund.Params) (refund.Result, error) {
	if s.refundFn == nil {
		return refund.Result{}, nil
	}
	return s.refundFn(ctx, params)
}
