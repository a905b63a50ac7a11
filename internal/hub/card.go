package hub

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"dataviewer/internal/logging"
)

// cardFilenames are tried in order when fetching dataset documentation.
var cardFilenames = []string{"README.md", "dataset_card.md"}

// FetchCard downloads the dataset card (README) from the hub. Both
// conventional filenames are tried in order; the caller treats any error as
// "no documentation available".
func (c *Client) FetchCard(ctx context.Context, dataset string) (string, error) {
	var lastErr error
	for _, filename := range cardFilenames {
		text, err := c.fetchFile(ctx, dataset, filename)
		if err == nil {
			logging.DatasetDebug("card for %s: %s (%d bytes)", dataset, filename, len(text))
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("no dataset card for %s: %w", dataset, lastErr)
}

func (c *Client) fetchFile(ctx context.Context, dataset, filename string) (string, error) {
	u := fmt.Sprintf("%s/datasets/%s/resolve/main/%s", c.hubURL, dataset, filename)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("hub request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}
