// Package catalog lists the models advertised by an OpenAI-compatible
// endpoint, for picking a model name to debug against.
package catalog

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/probekit/chatprobe/internal/core"
	"github.com/sashabaranov/go-openai"
)

// Client queries the /models route of an OpenAI-compatible API.
type Client struct {
	api *openai.Client
}

// New creates a catalog client. baseURL is the API root (for example
// "https://api.openai.com/v1"); empty keeps the library default.
func New(baseURL, token string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Models returns the model IDs advertised by the endpoint, sorted.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, core.WrapError(core.ErrCatalogFailed, err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}
