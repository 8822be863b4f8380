package lambdacloud

import (
	"github.com/jaysparkx/LambdaCloudWrapper/config"
)

// NewFromConfig builds a client from environment configuration. Options passed
// here are applied after the configured ones.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	configured := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.HTTPTimeout),
		WithLaunchRetryPolicy(cfg.LaunchRetryPolicy()),
		WithMaxResponseSize(cfg.MaxResponseSize),
	}

	if limiter := cfg.RateLimiter(); limiter != nil {
		configured = append(configured, WithRateLimiter(limiter))
	}

	return New(cfg.APIKey, append(configured, opts...)...)
}
