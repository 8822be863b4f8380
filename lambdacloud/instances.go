package lambdacloud

import (
	"context"

	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
)

// ListInstanceTypes returns every instance type keyed by name, together with
// the regions that currently have capacity for it.
func (c *Client) ListInstanceTypes(ctx context.Context) (map[string]InstanceTypeInfo, error) {
	return getData[map[string]InstanceTypeInfo](ctx, c, pathInstanceTypes)
}

func (c *Client) ListInstances(ctx context.Context) ([]Instance, error) {
	return getData[[]Instance](ctx, c, pathInstances)
}

func (c *Client) GetInstance(ctx context.Context, instanceID string) (*Instance, error) {
	if err := c.validateID("instance_id", instanceID); err != nil {
		return nil, err
	}

	instance, err := getData[Instance](ctx, c, resourcePath(pathInstances, instanceID))
	if err != nil {
		return nil, err
	}

	return &instance, nil
}

// LaunchInstance launches req.Quantity instances (one by default) and returns
// their ids. It is the only call that waits out 429 responses; see
// WithLaunchRetryPolicy.
func (c *Client) LaunchInstance(ctx context.Context, req LaunchRequest) ([]string, error) {
	if req.Name != nil && *req.Name == "" {
		req.Name = nil
	}

	if req.FileSystemNames == nil {
		req.FileSystemNames = []string{}
	}

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	result, err := postData[launchResult](ctx, c, pathLaunch, req, httpclient.WithRetry(c.launchRetry))
	if err != nil {
		return nil, err
	}

	return result.InstanceIDs, nil
}

func (c *Client) TerminateInstances(ctx context.Context, instanceIDs ...string) ([]Instance, error) {
	req := instanceIDsRequest{InstanceIDs: instanceIDs}
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	result, err := postData[terminateResult](ctx, c, pathTerminate, req)
	if err != nil {
		return nil, err
	}

	return result.TerminatedInstances, nil
}

func (c *Client) RestartInstances(ctx context.Context, instanceIDs ...string) ([]Instance, error) {
	req := instanceIDsRequest{InstanceIDs: instanceIDs}
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	result, err := postData[restartResult](ctx, c, pathRestart, req)
	if err != nil {
		return nil, err
	}

	return result.RestartedInstances, nil
}
