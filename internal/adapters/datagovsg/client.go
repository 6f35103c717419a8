// Package datagovsg fetches live taxi availability from the data.gov.sg
// real-time transport API.
package datagovsg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
	"github.com/sgmobility/taxihotspots/internal/pkg/config"
)

const taxiAvailabilityPath = "/v1/transport/taxi-availability"

// Client is an HTTP client for the data.gov.sg transport API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new data.gov.sg client.
func NewClient(cfg config.DataGovSGConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// featureCollection mirrors the GeoJSON payload of the taxi-availability
// endpoint. Coordinates arrive as [lon, lat] pairs on a single
// MultiPoint feature.
type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Timestamp string `json:"timestamp"`
			TaxiCount int    `json:"taxi_count"`
		} `json:"properties"`
	} `json:"features"`
}

// FetchTaxiPositions returns the current positions of all available
// taxis. Any transport, auth or payload failure aborts the run.
func (c *Client) FetchTaxiPositions(ctx context.Context) ([]domain.TaxiPosition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+taxiAvailabilityPath, nil)
	if err != nil {
		return nil, &domain.FetchError{Source: "taxi availability", Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Source: "taxi availability", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.FetchError{
			Source: "taxi availability",
			Err:    fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, &domain.FetchError{Source: "taxi availability", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(fc.Features) == 0 {
		return nil, &domain.FetchError{Source: "taxi availability", Err: fmt.Errorf("no features in response")}
	}

	coords := fc.Features[0].Geometry.Coordinates
	positions := make([]domain.TaxiPosition, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			continue
		}
		positions = append(positions, domain.TaxiPosition{
			Location: domain.GeoPoint{Lat: pair[1], Lon: pair[0]},
		})
	}

	slog.Debug("taxi availability fetched",
		"positions", len(positions), "feed_timestamp", fc.Features[0].Properties.Timestamp)

	return positions, nil
}
