package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-mobile-money/core"
)

const KindREST = "rest"

const defaultRESTClientTimeout = 30 * time.Second
const defaultRESTResponseBodyLimit int64 = 10 << 20 // 10 MiB

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTAdapter executes one HTTP exchange per call. Every failure is returned
// as a *Failure tagged with the stage it happened in.
type RESTAdapter struct {
	Client               HTTPDoer
	DefaultHeaders       map[string]string
	MaxResponseBodyBytes int64
}

func NewRESTAdapter(client HTTPDoer) *RESTAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultRESTClientTimeout}
	}
	return &RESTAdapter{
		Client:               client,
		DefaultHeaders:       map[string]string{"Accept": "application/json"},
		MaxResponseBodyBytes: defaultRESTResponseBodyLimit,
	}
}

func (*RESTAdapter) Kind() string {
	return KindREST
}

func (a *RESTAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil || a.Client == nil {
		return core.TransportResponse{}, transportError(
			"transport: rest adapter requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindREST},
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	rawURL := strings.TrimSpace(req.URL)
	configFailure := func(cause error) error {
		return &Failure{
			Stage:       StageConfig,
			Method:      method,
			URL:         rawURL,
			RequestBody: req.Body,
			Cause:       cause,
		}
	}
	if rawURL == "" {
		return core.TransportResponse{}, configFailure(errors.New("request url is required"))
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return core.TransportResponse{}, configFailure(err)
	}

	requestCtx := ctx
	cancel := func() {}
	if req.Timeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, method, parsedURL.String(), bytes.NewReader(req.Body))
	if err != nil {
		return core.TransportResponse{}, configFailure(err)
	}
	for key, value := range a.DefaultHeaders {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	for key, value := range req.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	startedAt := time.Now().UTC()
	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		stage := StageRequest
		if neverSent(err) {
			stage = StageConfig
		}
		return core.TransportResponse{}, &Failure{
			Stage:       stage,
			Method:      method,
			URL:         parsedURL.String(),
			RequestBody: req.Body,
			Cause:       err,
		}
	}
	defer httpRes.Body.Close()

	maxBodyBytes := resolveResponseBodyLimit(req.MaxResponseBodyBytes, a.MaxResponseBodyBytes)
	body, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		return core.TransportResponse{}, &Failure{
			Stage:       StageRequest,
			Method:      method,
			URL:         parsedURL.String(),
			RequestBody: req.Body,
			Cause:       fmt.Errorf("read response body: %w", err),
		}
	}
	headers := flattenHeaders(httpRes.Header)
	if int64(len(body)) > maxBodyBytes {
		return core.TransportResponse{}, &Failure{
			Stage:       StageResponse,
			Method:      method,
			URL:         parsedURL.String(),
			StatusCode:  httpRes.StatusCode,
			Status:      httpRes.Status,
			Headers:     headers,
			RequestBody: req.Body,
			Cause:       fmt.Errorf("response body exceeds limit of %d bytes", maxBodyBytes),
		}
	}
	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		return core.TransportResponse{}, &Failure{
			Stage:       StageResponse,
			Method:      method,
			URL:         parsedURL.String(),
			StatusCode:  httpRes.StatusCode,
			Status:      httpRes.Status,
			Headers:     headers,
			Body:        body,
			RequestBody: req.Body,
		}
	}

	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    headers,
		Body:       body,
		Metadata: map[string]any{
			"duration_ms": time.Since(startedAt).Milliseconds(),
			"kind":        KindREST,
		},
	}, nil
}

// neverSent reports failures raised before the request reached the wire:
// unresolvable hosts and requests the client refused to build.
func neverSent(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unsupported protocol scheme") ||
		strings.Contains(message, "no host in request url") ||
		strings.Contains(message, "invalid header field")
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

func resolveResponseBodyLimit(requestLimit int64, adapterLimit int64) int64 {
	if requestLimit > 0 {
		return requestLimit
	}
	if adapterLimit > 0 {
		return adapterLimit
	}
	return defaultRESTResponseBodyLimit
}

var _ core.TransportAdapter = (*RESTAdapter)(nil)
