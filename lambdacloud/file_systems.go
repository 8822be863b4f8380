package lambdacloud

import "context"

func (c *Client) ListFileSystems(ctx context.Context) ([]FileSystem, error) {
	return getData[[]FileSystem](ctx, c, pathFileSystems)
}
