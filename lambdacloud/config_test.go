package lambdacloud_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jaysparkx/LambdaCloudWrapper/config"
	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"github.com/jaysparkx/LambdaCloudWrapper/lambdacloud"
	"github.com/jaysparkx/LambdaCloudWrapper/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		APIKey:                 "config_key",
		BaseURL:                "https://lambda.example.test/api",
		HTTPTimeout:            5 * time.Second,
		LaunchRetryInterval:    time.Millisecond,
		LaunchRetryMaxAttempts: 2,
		RateLimitRPS:           100,
		RateLimitBurst:         10,
	}

	transport := testutil.NewFakeTransport(testutil.RawResponse(http.StatusTooManyRequests, `{}`))

	client, err := lambdacloud.NewFromConfig(cfg,
		lambdacloud.WithTransport(transport),
		lambdacloud.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	require.Equal(t, "https://lambda.example.test/api", client.BaseURL())

	_, err = client.LaunchInstance(t.Context(), validLaunchRequest())

	httpErr, ok := httpclient.AsHTTPError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	require.Equal(t, 2, transport.CallCount())

	call := transport.LastCall()
	require.Equal(t, "https://lambda.example.test/api/v1/instance-operations/launch", call.URL)
	testutil.AssertBearerToken(t, call.Header, "config_key")
}

func TestNewFromConfig_AppliesMaxResponseSize(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		APIKey:              "config_key",
		BaseURL:             lambdacloud.DefaultBaseURL,
		HTTPTimeout:         5 * time.Second,
		MaxResponseSize:     8,
		LaunchRetryInterval: time.Millisecond,
		RateLimitBurst:      1,
	}

	transport := testutil.NewFakeTransport(testutil.RawResponse(http.StatusOK, `{"data":[]}`))

	client, err := lambdacloud.NewFromConfig(cfg, lambdacloud.WithTransport(transport))
	require.NoError(t, err)

	_, err = client.ListFileSystems(t.Context())

	require.ErrorIs(t, err, httpclient.ErrResponseTooLarge)
}

func TestNewFromConfig_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := lambdacloud.NewFromConfig(&config.Config{BaseURL: lambdacloud.DefaultBaseURL})

	require.ErrorIs(t, err, lambdacloud.ErrMissingToken)
}
