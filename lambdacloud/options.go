package lambdacloud

import (
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type options struct {
	baseURL     string
	launchRetry httpclient.RetryPolicy
	httpOpts    []httpclient.Option
}

type Option func(*options)

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithLaunchRetryPolicy replaces the rate-limit policy of LaunchInstance. The
// default waits 60 seconds between attempts and never gives up.
func WithLaunchRetryPolicy(policy httpclient.RetryPolicy) Option {
	return func(o *options) {
		o.launchRetry = policy
	}
}

func WithTransport(transport httpclient.Transport) Option {
	return withHTTPOption(httpclient.WithTransport(transport))
}

func WithHTTPClient(httpClient *http.Client) Option {
	return withHTTPOption(httpclient.WithHTTPClient(httpClient))
}

func WithTimeout(timeout time.Duration) Option {
	return withHTTPOption(httpclient.WithTimeout(timeout))
}

func WithLogger(logger zerolog.Logger) Option {
	return withHTTPOption(httpclient.WithLogger(logger))
}

func WithClock(clk clock.Clock) Option {
	return withHTTPOption(httpclient.WithClock(clk))
}

func WithRateLimiter(limiter *rate.Limiter) Option {
	return withHTTPOption(httpclient.WithRateLimiter(limiter))
}

// WithMaxResponseSize rejects response bodies larger than size bytes with
// httpclient.ErrResponseTooLarge. Zero means no limit.
func WithMaxResponseSize(size int64) Option {
	return withHTTPOption(httpclient.WithMaxResponseSize(size))
}

// WithRequestIDKey sends the string stored under key in the request context as
// X-Request-ID instead of a fresh UUID.
func WithRequestIDKey(key any) Option {
	return withHTTPOption(httpclient.WithRequestIDKey(key))
}

// WithHTTPOptions passes options straight to the underlying httpclient.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, opts...)
	}
}

func withHTTPOption(opt httpclient.Option) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, opt)
	}
}
