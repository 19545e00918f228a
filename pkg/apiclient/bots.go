package apiclient

import (
	"context"
	"net/url"
)

// Bot is one entry of the dashboard's bot list.
type Bot struct {
	ID      string `json:"id"`
	Running bool   `json:"state"`
	Adapter string `json:"adapter"`
	Alias   string `json:"alias"`
	Desc    string `json:"desc"`
}

// BotConfig describes a bot to create.
type BotConfig struct {
	Alias         string         `json:"alias"`
	Desc          string         `json:"desc"`
	AutoStart     bool           `json:"auto_start"`
	AdapterName   string         `json:"adapter_name"`
	AdapterID     string         `json:"adapter_id"`
	AdapterConfig map[string]any `json:"adapter_config"`
}

// Bots lists every bot known to the dashboard.
func (c *Client) Bots(ctx context.Context) ([]Bot, error) {
	var resp struct {
		Bots []Bot `json:"bots"`
	}
	if err := c.getJSON(ctx, "/bot/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bots, nil
}

// AddBot registers a new bot and loads it.
func (c *Client) AddBot(ctx context.Context, bot BotConfig) error {
	if bot.AdapterConfig == nil {
		bot.AdapterConfig = map[string]any{}
	}
	return c.postJSON(ctx, "/bot/add", nil, bot, nil)
}

// DeleteBot stops and removes a bot.
func (c *Client) DeleteBot(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/bot/del", url.Values{"bot_id": {id}}, nil, nil)
}

// SwitchBot starts the bot when running is true and stops it otherwise.
func (c *Client) SwitchBot(ctx context.Context, id string, running bool) error {
	body := struct {
		BotID string `json:"bot_id"`
		State bool   `json:"state"`
	}{id, running}
	return c.postJSON(ctx, "/bot/switch", nil, body, nil)
}
