package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ReverseGeocoder resolves a coordinate pair into a human-readable place
// name. Implementations are best-effort: callers must treat any error as
// recoverable and fall back to a raw coordinate string.
type ReverseGeocoder interface {
	ResolvePlaceName(ctx context.Context, latitude, longitude float64) (string, error)
}

// Client talks to a Nominatim-compatible reverse geocoding endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ResolvePlaceName implements ReverseGeocoder.
func (c *Client) ResolvePlaceName(ctx context.Context, latitude, longitude float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", latitude))
	q.Set("lon", fmt.Sprintf("%f", longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	if body.DisplayName == "" {
		return "", fmt.Errorf("reverse geocode returned empty place name")
	}

	return body.DisplayName, nil
}
