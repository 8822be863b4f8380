package httpclient

import (
	"maps"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout      = 30 * time.Second
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
)

type Option func(*Client)

// WithTimeout sets the timeout of the current transport when it is one of the
// built-in transports. Apply it after WithHTTPClient/WithRestyClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		switch transport := c.transport.(type) {
		case *HTTPTransport:
			if httpClient, ok := transport.doer.(*http.Client); ok {
				httpClient.Timeout = timeout
			}
		case *RestyTransport:
			transport.client.SetTimeout(timeout)
		}
	}
}

// WithHTTPClient sends through httpClient, or through a default net/http client
// when httpClient is nil.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.transport = NewHTTPTransport(httpClient)
	}
}

func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *Client) {
		c.transport = NewRestyTransport(restyClient)
	}
}

func WithTransport(transport Transport) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithRequestIDKey(key any) Option {
	return func(c *Client) {
		c.requestIDKey = key
	}
}

func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		maps.Copy(c.defaultHeaders, headers)
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}

// WithRateLimiter throttles every send, retries included, through limiter.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithClock(clk clock.Clock) Option {
	return func(c *Client) {
		if clk != nil {
			c.clock = clk
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

type RequestOption func(*requestConfig)

type requestConfig struct {
	headers   map[string]string
	timeout   time.Duration
	requestID string
	retry     *RetryPolicy
}

func WithRequestHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		rc.headers[key] = value
	}
}

// WithRequestTimeout bounds each individual send. Waits between rate-limit
// retries are not counted.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(rc *requestConfig) {
		rc.timeout = timeout
	}
}

func WithRequestID(requestID string) RequestOption {
	return func(rc *requestConfig) {
		rc.requestID = requestID
	}
}

// WithRetry turns on the rate-limit retry loop for this request.
func WithRetry(policy RetryPolicy) RequestOption {
	return func(rc *requestConfig) {
		rc.retry = &policy
	}
}
