package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-mobile-money/core"
)

// Normalize maps transport failures onto the three normalized error shapes.
// Errors that did not come from the transport are returned unchanged.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := core.AsNormalizedError(err); ok {
		return err
	}
	var failure *Failure
	if !errors.As(err, &failure) {
		return err
	}
	switch failure.Stage {
	case StageResponse:
		response := core.ResponseFailure{
			Data:        decodeBody(failure.Body),
			Status:      failure.StatusCode,
			StatusText:  failure.statusText(),
			Headers:     failure.Headers,
			RequestBody: redactBody(failure.RequestBody),
		}
		if failure.Cause != nil {
			response.Cause = failure.Cause.Error()
		}
		return core.NewResponseError(response, failure)
	case StageRequest:
		return core.NewRequestFailed(core.RequestFailure{
			Method: failure.Method,
			URL:    failure.URL,
			Cause:  failure.causeText(),
		}, failure)
	default:
		return core.NewConfigFailed(failure.causeText(), failure)
	}
}

func decodeBody(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	return decoded
}

func redactBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	encoded, err := json.Marshal(core.RedactSensitiveMap(decoded))
	if err != nil {
		return ""
	}
	return string(encoded)
}

// MalformedResponse reports a 2xx answer whose body could not be used.
func MalformedResponse(method string, rawURL string, res core.TransportResponse, cause error) *core.NormalizedError {
	failure := core.ResponseFailure{
		Data:       decodeBody(res.Body),
		Status:     res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
		Headers:    res.Headers,
	}
	if cause != nil {
		failure.Cause = cause.Error()
	}
	return core.NewResponseError(failure, &Failure{
		Stage:      StageResponse,
		Method:     method,
		URL:        rawURL,
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       res.Body,
		Cause:      cause,
	})
}

// DecodeObject reads a 2xx body as a JSON object. An empty body decodes to
// an empty map.
func DecodeObject(method string, rawURL string, res core.TransportResponse) (map[string]any, error) {
	raw := map[string]any{}
	if strings.TrimSpace(string(res.Body)) == "" {
		return raw, nil
	}
	if err := json.Unmarshal(res.Body, &raw); err != nil {
		return nil, MalformedResponse(method, rawURL, res, fmt.Errorf("decode response: %w", err))
	}
	return raw, nil
}
