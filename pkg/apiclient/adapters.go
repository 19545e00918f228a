package apiclient

import (
	"context"
	"net/url"
)

// Adapter is a chat platform adapter that bots run on.
type Adapter struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Platform string `json:"platform"`
	Version  string `json:"version"`
	Fields   Scheme `json:"fields,omitempty"`
}

// Adapters lists the available adapters. Fields are not included.
func (c *Client) Adapters(ctx context.Context) ([]Adapter, error) {
	var resp struct {
		Adapters []Adapter `json:"adapters"`
	}
	if err := c.getJSON(ctx, "/adapter/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Adapters, nil
}

// Adapter fetches one adapter including its configuration fields.
func (c *Client) Adapter(ctx context.Context, id string) (*Adapter, error) {
	var resp struct {
		Adapter Adapter `json:"adapter"`
	}
	if err := c.getJSON(ctx, "/adapter/", url.Values{"adapter_id": {id}}, &resp); err != nil {
		return nil, err
	}
	return &resp.Adapter, nil
}

// AdapterDocs returns an adapter's setup documentation as markdown.
func (c *Client) AdapterDocs(ctx context.Context, id string) (string, error) {
	var resp struct {
		Docs string `json:"docs"`
	}
	if err := c.getJSON(ctx, "/adapter/docs", url.Values{"adapter_id": {id}}, &resp); err != nil {
		return "", err
	}
	return resp.Docs, nil
}
