package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ServiceErrorBadInput        = "MOBILE_MONEY_BAD_INPUT"
	ServiceErrorTokenFailed     = "MOBILE_MONEY_TOKEN_FAILED"
	ServiceErrorOperationFailed = "MOBILE_MONEY_OPERATION_FAILED"
	ServiceErrorResponseError   = "MOBILE_MONEY_RESPONSE_ERROR"
	ServiceErrorRequestFailed   = "MOBILE_MONEY_REQUEST_FAILED"
	ServiceErrorConfigFailed    = "MOBILE_MONEY_CONFIG_FAILED"
	ServiceErrorInternal        = "MOBILE_MONEY_INTERNAL_ERROR"
)

// Stage messages carried by OperationError.
const (
	MessageTokenFailed  = "failed to generate token"
	MessageCashInFailed = "Cash in initialization failed"
	MessageRefundFailed = "Refund initialization failed"
)

type NormalizedErrorKind string

const (
	KindResponseError NormalizedErrorKind = "responseError"
	KindRequestFailed NormalizedErrorKind = "requestFailed"
	KindConfigFailed  NormalizedErrorKind = "configFailed"
)

// ResponseFailure describes a remote answer with a non-success status.
type ResponseFailure struct {
	Data        any               `json:"data,omitempty"`
	Status      int               `json:"status"`
	StatusText  string            `json:"statusText"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestBody string            `json:"requestBody,omitempty"`
	Cause       string            `json:"cause,omitempty"`
}

// RequestFailure describes a request that was sent but never answered.
type RequestFailure struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Cause  string `json:"cause,omitempty"`
}

// NormalizedError is the only network failure shape that leaves this module.
// Exactly one of Response, Request or ConfigMessage is set, matching Kind.
type NormalizedError struct {
	Kind          NormalizedErrorKind `json:"-"`
	Response      *ResponseFailure    `json:"responseError,omitempty"`
	Request       *RequestFailure     `json:"requestFailed,omitempty"`
	ConfigMessage string              `json:"configFailed,omitempty"`
	cause         error
}

func NewResponseError(failure ResponseFailure, cause error) *NormalizedError {
	return &NormalizedError{Kind: KindResponseError, Response: &failure, cause: cause}
}

func NewRequestFailed(failure RequestFailure, cause error) *NormalizedError {
	return &NormalizedError{Kind: KindRequestFailed, Request: &failure, cause: cause}
}

func NewConfigFailed(message string, cause error) *NormalizedError {
	return &NormalizedError{Kind: KindConfigFailed, ConfigMessage: message, cause: cause}
}

func (e *NormalizedError) Error() string {
	if e == nil {
		return "mobilemoney: network failure"
	}
	switch e.Kind {
	case KindResponseError:
		if e.Response == nil {
			return string(KindResponseError)
		}
		return fmt.Sprintf("%s: status %d %s", KindResponseError, e.Response.Status, strings.TrimSpace(e.Response.StatusText))
	case KindRequestFailed:
		if e.Request == nil {
			return string(KindRequestFailed)
		}
		return fmt.Sprintf("%s: %s %s: %s", KindRequestFailed, e.Request.Method, e.Request.URL, e.Request.Cause)
	default:
		return fmt.Sprintf("%s: %s", KindConfigFailed, e.ConfigMessage)
	}
}

func (e *NormalizedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func (e *NormalizedError) Envelope() *goerrors.Error {
	if e == nil {
		return nil
	}
	var out *goerrors.Error
	switch e.Kind {
	case KindResponseError:
		code := http.StatusBadGateway
		metadata := map[string]any{"kind": string(e.Kind)}
		if e.Response != nil {
			if e.Response.Status > 0 {
				code = e.Response.Status
			}
			metadata["status"] = e.Response.Status
			metadata["status_text"] = e.Response.StatusText
		}
		out = goerrors.New(e.Error(), goerrors.CategoryExternal).
			WithCode(code).
			WithTextCode(ServiceErrorResponseError)
		out.WithMetadata(metadata)
	case KindRequestFailed:
		out = goerrors.New(e.Error(), goerrors.CategoryExternal).
			WithCode(http.StatusBadGateway).
			WithTextCode(ServiceErrorRequestFailed)
		out.WithMetadata(map[string]any{"kind": string(e.Kind)})
	default:
		out = goerrors.New(e.Error(), goerrors.CategoryInternal).
			WithCode(http.StatusInternalServerError).
			WithTextCode(ServiceErrorConfigFailed)
		out.WithMetadata(map[string]any{"kind": string(KindConfigFailed)})
	}
	return out
}

// OperationError tags a stage failure with its stage message. Raw holds the
// normalized cause.
type OperationError struct {
	Message string `json:"message"`
	Raw     error  `json:"raw"`
}

func NewOperationError(message string, raw error) *OperationError {
	return &OperationError{Message: message, Raw: raw}
}

func (e *OperationError) Error() string {
	if e == nil {
		return "mobilemoney: operation failed"
	}
	if e.Raw == nil {
		return e.Message
	}
	return e.Message + ": " + e.Raw.Error()
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Raw
}

func (e *OperationError) Envelope() *goerrors.Error {
	if e == nil {
		return nil
	}
	category := goerrors.CategoryExternal
	code := http.StatusBadGateway
	textCode := ServiceErrorOperationFailed
	if e.Message == MessageTokenFailed {
		category = goerrors.CategoryAuth
		code = http.StatusUnauthorized
		textCode = ServiceErrorTokenFailed
	}
	var out *goerrors.Error
	if e.Raw != nil {
		out = goerrors.Wrap(e.Raw, category, e.Message)
	} else {
		out = goerrors.New(e.Message, category)
	}
	out = out.WithCode(code).WithTextCode(textCode)
	metadata := map[string]any{"stage_message": e.Message}
	var normalized *NormalizedError
	if errors.As(e.Raw, &normalized) {
		metadata["kind"] = string(normalized.Kind)
	}
	out.WithMetadata(metadata)
	return out
}

// ValidationError lists field errors found before any network call.
type ValidationError struct {
	Message string
	Fields  []goerrors.FieldError
}

func NewValidationError(message string, fields ...goerrors.FieldError) *ValidationError {
	if strings.TrimSpace(message) == "" {
		message = "mobilemoney: validation failed"
	}
	return &ValidationError{Message: message, Fields: append([]goerrors.FieldError(nil), fields...)}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "mobilemoney: validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Field+": "+field.Message)
	}
	if len(parts) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Fields)
}

func (e *ValidationError) FieldNames() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		names = append(names, field.Field)
	}
	return names
}

func (e *ValidationError) Envelope() *goerrors.Error {
	if e == nil {
		return nil
	}
	return goerrors.NewValidation(e.Message, e.Fields...).
		WithCode(http.StatusBadRequest).
		WithTextCode(ServiceErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

func NewDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ServiceErrorInternal)
}

type enveloper interface {
	Envelope() *goerrors.Error
}

// ToServiceError maps any error returned by this module to a go-errors
// envelope.
func ToServiceError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var typed enveloper
	if errors.As(err, &typed) {
		if envelope := typed.Envelope(); envelope != nil {
			return envelope
		}
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureServiceErrorEnvelope(mapped)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = serviceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultServiceTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultServiceTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ServiceErrorBadInput
	case goerrors.CategoryAuth:
		return ServiceErrorTokenFailed
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return ServiceErrorOperationFailed
	default:
		return ServiceErrorInternal
	}
}

func serviceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func AsOperationError(err error) (*OperationError, bool) {
	var target *OperationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func AsNormalizedError(err error) (*NormalizedError, bool) {
	var target *NormalizedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
