package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"golang.org/x/time/rate"
)

type Config struct {
	// Application
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	LogConsole bool   `env:"LOG_CONSOLE" envDefault:"true"`

	// Lambda Cloud API
	APIKey      string        `env:"LAMBDA_API_KEY,required,notEmpty"`
	BaseURL     string        `env:"LAMBDA_BASE_URL"     envDefault:"https://cloud.lambdalabs.com/api"`
	HTTPTimeout time.Duration `env:"LAMBDA_HTTP_TIMEOUT" envDefault:"30s"`

	// Response body cap in bytes, off when zero.
	MaxResponseSize int64 `env:"LAMBDA_MAX_RESPONSE_SIZE" envDefault:"10485760"`

	// Launch rate-limit retry. Zero bounds mean retry until a non-429 response.
	LaunchRetryInterval    time.Duration `env:"LAMBDA_LAUNCH_RETRY_INTERVAL"     envDefault:"60s"`
	LaunchRetryMaxAttempts int           `env:"LAMBDA_LAUNCH_RETRY_MAX_ATTEMPTS" envDefault:"0"`
	LaunchRetryMaxElapsed  time.Duration `env:"LAMBDA_LAUNCH_RETRY_MAX_ELAPSED"  envDefault:"0s"`

	// Client-side throttling, off when RPS is zero.
	RateLimitRPS   float64 `env:"LAMBDA_RATE_LIMIT_RPS"   envDefault:"0"`
	RateLimitBurst int     `env:"LAMBDA_RATE_LIMIT_BURST" envDefault:"1"`

	// Smoke run
	SmokeLaunch         bool          `env:"SMOKE_LAUNCH"          envDefault:"false"`
	SmokeKeyPrefix      string        `env:"SMOKE_KEY_PREFIX"      envDefault:"smoke-key"`
	SmokeInstancePrefix string        `env:"SMOKE_INSTANCE_PREFIX" envDefault:"smoke-instance"`
	SmokePollInterval   time.Duration `env:"SMOKE_POLL_INTERVAL"   envDefault:"10s"`
	SmokeActiveTimeout  time.Duration `env:"SMOKE_ACTIVE_TIMEOUT"  envDefault:"15m"`
}

var ErrInvalidConfig = errors.New("config: invalid value")

func New() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LaunchRetryInterval <= 0 {
		return fmt.Errorf("%w: LAMBDA_LAUNCH_RETRY_INTERVAL must be positive", ErrInvalidConfig)
	}

	if c.LaunchRetryMaxAttempts < 0 || c.LaunchRetryMaxElapsed < 0 {
		return fmt.Errorf("%w: launch retry bounds must not be negative", ErrInvalidConfig)
	}

	if c.MaxResponseSize < 0 {
		return fmt.Errorf("%w: LAMBDA_MAX_RESPONSE_SIZE must not be negative", ErrInvalidConfig)
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("%w: rate limit must be non-negative with a burst of at least 1", ErrInvalidConfig)
	}

	return nil
}

func (c *Config) LaunchRetryPolicy() httpclient.RetryPolicy {
	return httpclient.RetryPolicy{
		Interval:    c.LaunchRetryInterval,
		MaxAttempts: c.LaunchRetryMaxAttempts,
		MaxElapsed:  c.LaunchRetryMaxElapsed,
	}
}

// RateLimiter returns nil when throttling is disabled.
func (c *Config) RateLimiter() *rate.Limiter {
	if c.RateLimitRPS == 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(c.RateLimitRPS), c.RateLimitBurst)
}
