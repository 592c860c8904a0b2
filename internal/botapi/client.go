package botapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vpnsub/internal/service"
)

// Client polls the backend status API on behalf of the bot. Timeouts are
// short and treated as transient: surfaced once, never retried here.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// GetStatus fetches the subscription summary for an identifier. A 404 means
// no subscription and returns (nil, nil) so callers can branch without
// error plumbing.
func (c *Client) GetStatus(identifier string) (*service.StatusSummary, error) {
	url := fmt.Sprintf("%s/api/subscription/%s", c.BaseURL, identifier)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api error: %s (status: %d)", string(respBody), resp.StatusCode)
	}

	var summary service.StatusSummary
	if err := json.Unmarshal(respBody, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &summary, nil
}
