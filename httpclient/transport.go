package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Response is the minimal view of a transport response the translator needs.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Outgoing is a fully built request: URL resolved, headers merged and body encoded.
// It is immutable once built, so a retry resends exactly the same bytes.
type Outgoing struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Transport sends one Outgoing request and returns the buffered response.
type Transport interface {
	Send(ctx context.Context, out *Outgoing) (Response, error)
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	_ Doer      = (*http.Client)(nil)
	_ Transport = (*HTTPTransport)(nil)
	_ Transport = (*RestyTransport)(nil)
	_ Response  = (*resty.Response)(nil)
)

type HTTPTransport struct {
	doer Doer
}

// NewHTTPTransport sends through doer. A nil doer, including a nil
// *http.Client, is replaced by a client with DefaultTimeout.
func NewHTTPTransport(doer Doer) *HTTPTransport {
	if httpClient, ok := doer.(*http.Client); ok && httpClient == nil {
		doer = nil
	}

	if doer == nil {
		doer = &http.Client{ //nolint:exhaustruct
			Timeout: DefaultTimeout,
		}
	}

	return &HTTPTransport{doer: doer}
}

func (t *HTTPTransport) Send(ctx context.Context, out *Outgoing) (Response, error) {
	var bodyReader io.Reader
	if out.Body != nil {
		bodyReader = bytes.NewReader(out.Body)
	}

	req, err := http.NewRequestWithContext(ctx, out.Method, out.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	req.Header = out.Header.Clone()

	resp, err := t.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &bufferedResponse{statusCode: resp.StatusCode, body: body}, nil
}

type bufferedResponse struct {
	statusCode int
	body       []byte
}

func (r *bufferedResponse) StatusCode() int { return r.statusCode }
func (r *bufferedResponse) Body() []byte    { return r.body }

// RestyTransport sends requests through a resty client. resty.Response already
// satisfies Response, so it is returned as-is.
type RestyTransport struct {
	client *resty.Client
}

func NewRestyTransport(client *resty.Client) *RestyTransport {
	if client == nil {
		client = resty.New().SetTimeout(DefaultTimeout)
	}

	return &RestyTransport{client: client}
}

func (t *RestyTransport) Send(ctx context.Context, out *Outgoing) (Response, error) {
	req := t.client.R().SetContext(ctx)

	for key, values := range out.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if out.Body != nil {
		req.SetBody(out.Body)
	}

	resp, err := req.Execute(out.Method, out.URL)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
