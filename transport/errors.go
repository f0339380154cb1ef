package transport

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/core"
)

// Stage records how far an exchange got before it failed.
type Stage string

const (
	// StageConfig failures happen before anything is sent.
	StageConfig Stage = "config"
	// StageRequest failures were sent but never answered.
	StageRequest Stage = "request"
	// StageResponse failures carry a non-2xx answer.
	StageResponse Stage = "response"
)

type Failure struct {
	Stage       Stage
	Method      string
	URL         string
	StatusCode  int
	Status      string
	Headers     map[string]string
	Body        []byte
	RequestBody []byte
	Cause       error
}

func (f *Failure) Error() string {
	if f == nil {
		return "transport: failure"
	}
	switch f.Stage {
	case StageResponse:
		return fmt.Sprintf("transport: %s %s returned %s", f.Method, f.URL, strings.TrimSpace(f.statusText()))
	case StageRequest:
		return fmt.Sprintf("transport: %s %s failed: %s", f.Method, f.URL, f.causeText())
	default:
		return fmt.Sprintf("transport: request configuration failed: %s", f.causeText())
	}
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Cause
}

func (f *Failure) statusText() string {
	if strings.TrimSpace(f.Status) != "" {
		return f.Status
	}
	if f.StatusCode > 0 {
		return fmt.Sprintf("%d %s", f.StatusCode, http.StatusText(f.StatusCode))
	}
	return ""
}

func (f *Failure) causeText() string {
	if f.Cause == nil {
		return "unknown cause"
	}
	return f.Cause.Error()
}

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ServiceErrorBadInput
	case goerrors.CategoryExternal:
		return core.ServiceErrorRequestFailed
	default:
		return core.ServiceErrorInternal
	}
}
