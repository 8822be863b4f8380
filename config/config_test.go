package config_test

import (
	"testing"
	"time"

	"github.com/jaysparkx/LambdaCloudWrapper/config"
	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// t.Setenv forbids t.Parallel, so these tests run sequentially.

func TestNew_AppliesDefaults(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "secret_key")

	cfg, err := config.New()

	require.NoError(t, err)
	require.Equal(t, "secret_key", cfg.APIKey)
	require.Equal(t, "https://cloud.lambdalabs.com/api", cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, int64(10<<20), cfg.MaxResponseSize)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, httpclient.DefaultRetryPolicy(), cfg.LaunchRetryPolicy())
	require.Nil(t, cfg.RateLimiter())
	require.False(t, cfg.SmokeLaunch)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "")

	_, err := config.New()

	require.Error(t, err)
}

func TestNew_ReadsRetryBounds(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "secret_key")
	t.Setenv("LAMBDA_LAUNCH_RETRY_INTERVAL", "5s")
	t.Setenv("LAMBDA_LAUNCH_RETRY_MAX_ATTEMPTS", "10")
	t.Setenv("LAMBDA_LAUNCH_RETRY_MAX_ELAPSED", "10m")

	cfg, err := config.New()

	require.NoError(t, err)
	require.Equal(t, httpclient.RetryPolicy{
		Interval:    5 * time.Second,
		MaxAttempts: 10,
		MaxElapsed:  10 * time.Minute,
	}, cfg.LaunchRetryPolicy())
}

func TestNew_RejectsNonPositiveRetryInterval(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "secret_key")
	t.Setenv("LAMBDA_LAUNCH_RETRY_INTERVAL", "0s")

	_, err := config.New()

	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNew_RejectsNegativeRateLimit(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "secret_key")
	t.Setenv("LAMBDA_RATE_LIMIT_RPS", "-1")

	_, err := config.New()

	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNew_RejectsNegativeMaxResponseSize(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "secret_key")
	t.Setenv("LAMBDA_MAX_RESPONSE_SIZE", "-1")

	_, err := config.New()

	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRateLimiter_BuildsLimiterWhenEnabled(t *testing.T) {
	t.Setenv("LAMBDA_API_KEY", "secret_key")
	t.Setenv("LAMBDA_RATE_LIMIT_RPS", "2.5")
	t.Setenv("LAMBDA_RATE_LIMIT_BURST", "4")

	cfg, err := config.New()
	require.NoError(t, err)

	limiter := cfg.RateLimiter()

	require.NotNil(t, limiter)
	require.Equal(t, rate.Limit(2.5), limiter.Limit())
	require.Equal(t, 4, limiter.Burst())
}
