package devkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-mobile-money/core"
	"github.com/goliatone/go-mobile-money/transport"
)

type TransportScript struct {
	Response core.TransportResponse
	Err      error
}

// JSONResponse scripts a 200 answer with body encoded as JSON.
func JSONResponse(body any) TransportScript {
	return StatusResponse(http.StatusOK, body)
}

func StatusResponse(status int, body any) TransportScript {
	encoded, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("devkit: encode scripted body: %v", err))
	}
	script := TransportScript{Response: core.TransportResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       encoded,
	}}
	if status < 200 || status > 299 {
		script.Err = &transport.Failure{
			Stage:      transport.StageResponse,
			StatusCode: status,
			Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       encoded,
		}
	}
	return script
}

// ConfigFailure scripts a failure raised before the request was sent.
func ConfigFailure(message string) TransportScript {
	return TransportScript{Err: &transport.Failure{
		Stage: transport.StageConfig,
		Cause: errors.New(message),
	}}
}

// RequestFailure scripts a request that was sent but never answered.
func RequestFailure(message string) TransportScript {
	return TransportScript{Err: &transport.Failure{
		Stage: transport.StageRequest,
		Cause: errors.New(message),
	}}
}

// TokenResponse scripts a successful credential exchange.
func TokenResponse(accessToken string) TransportScript {
	return JSONResponse(map[string]any{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"scope":        "am_application_scope default",
		"expires_in":   3600,
	})
}

// FakeTransportAdapter replays scripts in order and records every request.
// Once the scripts run out the last one repeats.
type FakeTransportAdapter struct {
	mu       sync.Mutex
	kind     string
	scripts  []TransportScript
	requests []core.TransportRequest
}

func NewFakeTransportAdapter(kind string, scripts ...TransportScript) *FakeTransportAdapter {
	return &FakeTransportAdapter{
		kind:    strings.TrimSpace(strings.ToLower(kind)),
		scripts: append([]TransportScript(nil), scripts...),
	}
}

func (a *FakeTransportAdapter) Kind() string {
	if a == nil {
		return ""
	}
	return a.kind
}

func (a *FakeTransportAdapter) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, fmt.Errorf("devkit: fake transport adapter is nil")
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, cloneTransportRequest(req))
	index := len(a.requests) - 1
	var script TransportScript
	switch {
	case index < len(a.scripts):
		script = a.scripts[index]
	case len(a.scripts) > 0:
		script = a.scripts[len(a.scripts)-1]
	default:
		return core.TransportResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{},
			Metadata:   map[string]any{"kind": a.kind},
		}, nil
	}
	if script.Err != nil {
		return core.TransportResponse{}, stampFailure(script.Err, req)
	}
	return cloneTransportResponse(script.Response), nil
}

func (a *FakeTransportAdapter) Requests() []core.TransportRequest {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]core.TransportRequest, 0, len(a.requests))
	for _, item := range a.requests {
		out = append(out, cloneTransportRequest(item))
	}
	return out
}

func (a *FakeTransportAdapter) Calls() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

// stampFailure fills in the request details a real adapter would report.
func stampFailure(err error, req core.TransportRequest) error {
	var failure *transport.Failure
	if !errors.As(err, &failure) {
		return err
	}
	stamped := *failure
	if stamped.Method == "" {
		stamped.Method = req.Method
	}
	if stamped.URL == "" {
		stamped.URL = req.URL
	}
	if len(stamped.RequestBody) == 0 {
		stamped.RequestBody = append([]byte(nil), req.Body...)
	}
	return &stamped
}

func cloneTransportRequest(in core.TransportRequest) core.TransportRequest {
	out := core.TransportRequest{
		Method:               in.Method,
		URL:                  in.URL,
		Headers:              map[string]string{},
		Body:                 append([]byte(nil), in.Body...),
		Metadata:             map[string]any{},
		Timeout:              in.Timeout,
		MaxResponseBodyBytes: in.MaxResponseBodyBytes,
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	for key, value := range in.Metadata {
		out.Metadata[key] = value
	}
	return out
}

func cloneTransportResponse(in core.TransportResponse) core.TransportResponse {
	out := core.TransportResponse{
		StatusCode: in.StatusCode,
		Headers:    map[string]string{},
		Body:       append([]byte(nil), in.Body...),
		Metadata:   map[string]any{},
	}
	for key, value := range in.Headers {
		out.Headers[key] = value
	}
	for key, value := range in.Metadata {
		out.Metadata[key] = value
	}
	return out
}

var _ core.TransportAdapter = (*FakeTransportAdapter)(nil)
