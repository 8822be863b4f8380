package httpclient

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the error envelope returned by the cloud API on failures.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func parseErrorResponse(body []byte) (ErrorDetail, bool) {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return ErrorDetail{}, false
	}

	return errResp.Error, true
}

// Translate classifies a response: 2xx bodies are decoded into out, anything
// else becomes an *HTTPError carrying the status code and raw body.
// A nil out skips decoding.
func Translate(resp Response, out any) error {
	return translate(resp, out, "", 0)
}

func translate(resp Response, out any, requestID string, maxResponseSize int64) error {
	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return NewHTTPError(status, resp.Body(), requestID)
	}

	body := resp.Body()

	if maxResponseSize > 0 && int64(len(body)) > maxResponseSize {
		return ErrResponseTooLarge
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}
