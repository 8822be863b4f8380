package lambdacloud

import (
	"context"

	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
)

// AddSSHKey registers a public key. With no PublicKey the server generates a
// key pair and returns the private half once, in SSHKey.PrivateKey.
func (c *Client) AddSSHKey(ctx context.Context, req AddSSHKeyRequest) (*SSHKey, error) {
	if req.PublicKey != nil && *req.PublicKey == "" {
		req.PublicKey = nil
	}

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	key, err := postData[SSHKey](ctx, c, pathSSHKeys, req)
	if err != nil {
		return nil, err
	}

	return &key, nil
}

func (c *Client) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	return getData[[]SSHKey](ctx, c, pathSSHKeys)
}

func (c *Client) DeleteSSHKey(ctx context.Context, keyID string) error {
	if err := c.validateID("ssh_key_id", keyID); err != nil {
		return err
	}

	_, err := httpclient.DeleteJSON[envelope[struct{}]](ctx, c.http, resourcePath(pathSSHKeys, keyID))

	return err
}
