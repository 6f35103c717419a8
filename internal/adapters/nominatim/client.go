// Package nominatim reverse-geocodes coordinates through the public
// OpenStreetMap Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
	"github.com/sgmobility/taxihotspots/internal/pkg/config"
)

// Client is an HTTP client for the Nominatim reverse-geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	zoom       int
}

// NewClient creates a new Nominatim client. Nominatim's usage policy
// requires an identifying User-Agent.
func NewClient(cfg config.NominatimConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		zoom:      cfg.Zoom,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Describe returns the display name for the given coordinate. Errors
// here never abort a run; callers degrade the affected row instead.
func (c *Client) Describe(ctx context.Context, p domain.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(c.zoom))
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from nominatim", resp.StatusCode)
	}

	var rev reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rev); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if rev.DisplayName == "" {
		return "Unknown", nil
	}
	return rev.DisplayName, nil
}
