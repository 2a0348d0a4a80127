package ioextract

import (
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

// TransportError describes a failed exchange with the API: a request
// that got no response, a non-2xx status, or a body that is not valid
// JSON. Extraction stops at the first TransportError, nothing is
// retried.
type TransportError struct {
	// URL of the request, with the API key redacted.
	URL string
	// StatusCode is 0 if no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func RequestError(url string, err error) error {
	msg := "Request to <em>%s</em> failed"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w", fn.Name(),
			&TransportError{URL: url, Err: err}),
	}
}

func HTTPStatusError(url string, status int, body string) error {
	msg := "API responded with status <em>%d</em> to <em>%s</em>"
	vars := []any{status, url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractHTTPStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w", fn.Name(),
			&TransportError{
				URL:        url,
				StatusCode: status,
				Err:        fmt.Errorf("unexpected response: %q", body),
			}),
	}
}

func DecodeError(url string, err error) error {
	msg := "Cannot decode API response from <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %w", fn.Name(),
			&TransportError{URL: url, Err: err}),
	}
}

func RateLimitError(err error) error {
	msg := "Interrupted while waiting for the API rate limit"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractRateLimitError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: rate limiter: %w", fn.Name(), err),
	}
}

func ArgumentError(name string, val int) error {
	msg := "Invalid <em>%s</em>: %d"
	vars := []any{name, val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid %s %d", fn.Name(), name, val),
	}
}

func BaseURLError(url string, err error) error {
	msg := "Invalid API URL <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn.Name(), url, err),
	}
}
