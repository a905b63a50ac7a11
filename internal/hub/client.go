// Package hub is a thin HTTP client for the Hugging Face hub and its
// datasets-server. It fetches split inventories, sample rows, and dataset
// cards; it never caches anything locally.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dataviewer/internal/logging"
)

const (
	defaultServerURL = "https://datasets-server.huggingface.co"
	defaultHubURL    = "https://huggingface.co"
)

// Client talks to the Hugging Face hub APIs.
type Client struct {
	serverURL  string
	hubURL     string
	token      string
	httpClient *http.Client
}

// Config holds client configuration. Zero values select the public hub.
type Config struct {
	ServerURL string
	HubURL    string
	Token     string
	Timeout   time.Duration
}

// NewClient creates a hub client against the public endpoints.
func NewClient() *Client {
	return NewClientWithConfig(Config{})
}

// NewClientWithConfig creates a hub client with custom endpoints, used by
// tests to point at local servers.
func NewClientWithConfig(config Config) *Client {
	if config.ServerURL == "" {
		config.ServerURL = defaultServerURL
	}
	if config.HubURL == "" {
		config.HubURL = defaultHubURL
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &Client{
		serverURL: config.ServerURL,
		hubURL:    config.HubURL,
		token:     config.Token,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hub request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type splitsResponse struct {
	Splits []struct {
		Dataset string `json:"dataset"`
		Config  string `json:"config"`
		Split   string `json:"split"`
	} `json:"splits"`
}

type sizeResponse struct {
	Size struct {
		Splits []struct {
			Dataset string `json:"dataset"`
			Config  string `json:"config"`
			Split   string `json:"split"`
			NumRows int    `json:"num_rows"`
		} `json:"splits"`
	} `json:"size"`
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int                    `json:"row_idx"`
		Row    map[string]interface{} `json:"row"`
	} `json:"rows"`
}

// LoadDataset fetches the split inventory for a dataset. Row counts are
// filled in best-effort from the size endpoint; a failure there leaves them
// at zero.
func (c *Client) LoadDataset(ctx context.Context, name string) (*Dataset, error) {
	logging.Dataset("loading dataset %s", name)

	var splits splitsResponse
	u := fmt.Sprintf("%s/splits?dataset=%s", c.serverURL, url.QueryEscape(name))
	if err := c.getJSON(ctx, u, &splits); err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", name, err)
	}
	if len(splits.Splits) == 0 {
		return nil, fmt.Errorf("dataset %s has no splits", name)
	}

	ds := &Dataset{Name: name, client: c}
	for _, s := range splits.Splits {
		ds.Splits = append(ds.Splits, SplitInfo{Config: s.Config, Name: s.Split})
	}

	var size sizeResponse
	u = fmt.Sprintf("%s/size?dataset=%s", c.serverURL, url.QueryEscape(name))
	if err := c.getJSON(ctx, u, &size); err != nil {
		logging.DatasetWarn("size lookup for %s failed: %v", name, err)
	} else {
		for i := range ds.Splits {
			for _, s := range size.Size.Splits {
				if s.Config == ds.Splits[i].Config && s.Split == ds.Splits[i].Name {
					ds.Splits[i].NumRows = s.NumRows
				}
			}
		}
	}

	logging.DatasetDebug("dataset %s: %d splits", name, len(ds.Splits))
	return ds, nil
}

// fetchRows pulls a window of rows for one config/split.
func (c *Client) fetchRows(ctx context.Context, dataset, cfgName, split string, offset, length int) ([]Instance, error) {
	u := fmt.Sprintf("%s/rows?dataset=%s&config=%s&split=%s&offset=%d&length=%d",
		c.serverURL, url.QueryEscape(dataset), url.QueryEscape(cfgName), url.QueryEscape(split), offset, length)

	var rows rowsResponse
	if err := c.getJSON(ctx, u, &rows); err != nil {
		return nil, err
	}

	out := make([]Instance, 0, len(rows.Rows))
	for _, r := range rows.Rows {
		out = append(out, Instance(r.Row))
	}
	return out, nil
}
