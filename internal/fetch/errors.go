package fetch

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	platform "github.com/jmgilman/go/errors"
)

// TransportError means the request could not be sent or the response not received.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError means a response arrived with a non-2xx status.
// Its message is the status text reported by the server.
type HTTPError struct {
	URL        string
	StatusCode int
	StatusText string
}

func (e *HTTPError) Error() string { return e.StatusText }

// ParseError means the response body was not valid JSON for the target type.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// MessageOf returns the message a fetch failure exposes to callers.
// For an HTTPError this is exactly the status text.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var pe platform.PlatformError
	if errors.As(err, &pe) {
		return pe.Message()
	}
	return err.Error()
}

func transportFailure(url string, err error) error {
	te := &TransportError{URL: url, Err: err}
	code := platform.CodeNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		code = platform.CodeTimeout
	}
	return platform.WrapWithContext(te, code, te.Error(), map[string]interface{}{"url": url})
}

func httpFailure(url string, resp *http.Response) error {
	he := &HTTPError{URL: url, StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	return platform.WrapWithContext(he, codeForStatus(resp.StatusCode), he.StatusText, map[string]interface{}{
		"url":    url,
		"status": resp.StatusCode,
	})
}

func parseFailure(url string, err error) error {
	pe := &ParseError{URL: url, Err: err}
	return platform.WrapWithContext(pe, platform.CodeInvalidInput, pe.Error(), map[string]interface{}{"url": url})
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

func codeForStatus(status int) platform.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return platform.CodeNotFound
	case http.StatusUnauthorized:
		return platform.CodeUnauthorized
	case http.StatusForbidden:
		return platform.CodeForbidden
	case http.StatusConflict:
		return platform.CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return platform.CodeInvalidInput
	case http.StatusTooManyRequests:
		return platform.CodeRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return platform.CodeTimeout
	case http.StatusServiceUnavailable:
		return platform.CodeUnavailable
	}
	if status >= 500 {
		return platform.CodeNetwork
	}
	return platform.CodeInternal
}
