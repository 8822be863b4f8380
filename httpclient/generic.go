//nolint:ireturn
package httpclient

import (
	"context"
)

func GetJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var result T
	err := c.Get(ctx, path, &result, opts...)

	return result, err
}

func PostJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var result T
	err := c.Post(ctx, path, body, &result, opts...)

	return result, err
}

func DeleteJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var result T
	err := c.Delete(ctx, path, &result, opts...)

	return result, err
}

func DoJSON[T any](ctx context.Context, c *Client, req *Request, opts ...RequestOption) (T, error) {
	var result T
	err := c.Do(ctx, req, &result, opts...)

	return result, err
}
