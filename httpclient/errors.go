package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequestFailed     = errors.New("httpclient: request failed")
	ErrHTTPStatus        = errors.New("httpclient: unsuccessful status code")
	ErrDecodeResponse    = errors.New("httpclient: failed to decode response")
	ErrCreateRequest     = errors.New("httpclient: failed to create request")
	ErrEncodeBody        = errors.New("httpclient: failed to encode request body")
	ErrUnsupportedMethod = errors.New("httpclient: unsupported method")
	ErrResponseTooLarge  = errors.New("httpclient: response body too large")
	ErrRetryCancelled    = errors.New("httpclient: retry wait cancelled")
	ErrRateLimitWait     = errors.New("httpclient: rate limiter wait failed")
)

// HTTPError is returned for every terminal response outside the 2xx range.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Code       string
	Message    string
	Suggestion string
	RequestID  string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("httpclient: %d %s: %s", e.StatusCode, e.Category(), http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// Category mirrors the conventional "Client Error" / "Server Error" split.
func (e *HTTPError) Category() string {
	switch {
	case e.IsClientError():
		return "Client Error"
	case e.IsServerError():
		return "Server Error"
	default:
		return "Unexpected Status"
	}
}

func (e *HTTPError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

func (e *HTTPError) Is(target error) bool {
	return errors.Is(target, ErrHTTPStatus)
}

func (e *HTTPError) Unwrap() error {
	return ErrHTTPStatus
}

func NewHTTPError(statusCode int, body []byte, requestID string) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Body:       body,
		Code:       "",
		Message:    "",
		Suggestion: "",
		RequestID:  requestID,
	}

	if detail, ok := parseErrorResponse(body); ok {
		httpErr.Code = detail.Code
		httpErr.Message = detail.Message
		httpErr.Suggestion = detail.Suggestion
	}

	return httpErr
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}
