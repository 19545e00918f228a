package apiclient

import (
	"context"
	"net/url"
)

// Plugin is one entry of the dashboard's plugin list.
type Plugin struct {
	Name    string `json:"name"`
	Author  string `json:"author"`
	Version string `json:"version"`
	Desc    string `json:"desc"`
	Repo    string `json:"repo"`
	Enabled bool   `json:"enable"`
}

// PluginConfig is a plugin's configuration together with the scheme that
// describes its keys.
type PluginConfig struct {
	Scheme Scheme         `json:"scheme"`
	Conf   map[string]any `json:"conf"`
}

func pluginQuery(name string) url.Values {
	return url.Values{"plugin_name": {name}}
}

// Plugins lists every installed plugin.
func (c *Client) Plugins(ctx context.Context) ([]Plugin, error) {
	var resp struct {
		Plugins []Plugin `json:"plugins"`
	}
	if err := c.getJSON(ctx, "/plugin/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plugins, nil
}

// SwitchPlugin enables or disables a plugin. The server remembers disabled
// plugins across restarts.
func (c *Client) SwitchPlugin(ctx context.Context, name string, enable bool) error {
	body := struct {
		PluginName string `json:"plugin_name"`
		Enable     bool   `json:"enable"`
	}{name, enable}
	return c.postJSON(ctx, "/plugin/switch", nil, body, nil)
}

func (c *Client) ReloadPlugin(ctx context.Context, name string) error {
	return c.postJSON(ctx, "/plugin/reload", pluginQuery(name), nil, nil)
}

func (c *Client) UninstallPlugin(ctx context.Context, name string) error {
	return c.postJSON(ctx, "/plugin/uninstall", pluginQuery(name), nil, nil)
}

// PluginConfig fetches a plugin's scheme and current configuration.
func (c *Client) PluginConfig(ctx context.Context, name string) (*PluginConfig, error) {
	var cfg PluginConfig
	if err := c.getJSON(ctx, "/plugin/config", pluginQuery(name), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdatePluginConfig merges conf into a plugin's configuration.
func (c *Client) UpdatePluginConfig(ctx context.Context, name string, conf map[string]any) error {
	body := struct {
		PluginName string         `json:"plugin_name"`
		Conf       map[string]any `json:"conf"`
	}{name, conf}
	return c.postJSON(ctx, "/plugin/config", nil, body, nil)
}

// RestartPlugins restarts the plugin manager.
func (c *Client) RestartPlugins(ctx context.Context) error {
	return c.postJSON(ctx, "/plugin/restart", nil, nil, nil)
}
