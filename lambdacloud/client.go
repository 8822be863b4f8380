// Package lambdacloud is a client for the Lambda GPU cloud API: instance types,
// instances, SSH keys and file systems.
package lambdacloud

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"github.com/jaysparkx/LambdaCloudWrapper/validator"
)

const (
	DefaultBaseURL = "https://cloud.lambdalabs.com/api"
	userAgent      = "LambdaCloudWrapper-go"

	pathFileSystems   = "/v1/file-systems"
	pathInstanceTypes = "/v1/instance-types"
	pathInstances     = "/v1/instances"
	pathLaunch        = "/v1/instance-operations/launch"
	pathTerminate     = "/v1/instance-operations/terminate"
	pathRestart       = "/v1/instance-operations/restart"
	pathSSHKeys       = "/v1/ssh-keys"
)

// Client is safe for concurrent use. The token is fixed at construction.
type Client struct {
	http        *httpclient.Client
	validate    *validator.Validator
	launchRetry httpclient.RetryPolicy
}

func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	cfg := &options{
		baseURL:     DefaultBaseURL,
		launchRetry: httpclient.DefaultRetryPolicy(),
		httpOpts:    nil,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	httpOpts := make([]httpclient.Option, 0, len(cfg.httpOpts)+3)
	httpOpts = append(httpOpts,
		httpclient.WithRestyClient(nil),
		httpclient.WithDefaultHeaders(map[string]string{"User-Agent": userAgent}),
		httpclient.WithBearerToken(token),
	)
	httpOpts = append(httpOpts, cfg.httpOpts...)

	return &Client{
		http:        httpclient.New(cfg.baseURL, httpOpts...),
		validate:    validator.New(),
		launchRetry: cfg.launchRetry,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

func (c *Client) validateRequest(req any) error {
	if err := c.validate.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return nil
}

func (c *Client) validateID(field, id string) error {
	if err := c.validate.Var(field, id, "required"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return nil
}

func getData[T any](ctx context.Context, c *Client, path string) (T, error) {
	resp, err := httpclient.GetJSON[envelope[T]](ctx, c.http, path)
	if err != nil {
		var zero T

		return zero, err
	}

	return resp.Data, nil
}

func postData[T any](
	ctx context.Context,
	c *Client,
	path string,
	body any,
	opts ...httpclient.RequestOption,
) (T, error) {
	resp, err := httpclient.PostJSON[envelope[T]](ctx, c.http, path, body, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return resp.Data, nil
}

func resourcePath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
