package apiclient

import "context"

// RestartSystem asks the server to restart its bot runtime. Open log
// streams are closed by the restart.
func (c *Client) RestartSystem(ctx context.Context) error {
	return c.postJSON(ctx, "/system/restart", nil, nil, nil)
}
