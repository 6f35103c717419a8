// Package onemap fetches planning-area boundaries from the OneMap
// population-query API.
package onemap

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

const planningAreaPath = "/api/public/popapi/getAllPlanningarea"

// Client is an HTTP client for the OneMap planning-area API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	year       int
}

// NewClient creates a new OneMap client.
func NewClient(cfg config.OneMapConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		year:    cfg.Year,
	}
}

// searchResults mirrors the getAllPlanningarea payload. The boundary
// geometry arrives as a GeoJSON document embedded in a string field.
type searchResults struct {
	SearchResults []struct {
		Name    string `json:"pln_area_n"`
		GeoJSON string `json:"geojson"`
	} `json:"SearchResults"`
}

// FetchPlanningAreas returns all planning areas for the configured
// year. Records whose embedded geometry cannot be parsed are skipped
// with a warning; transport and auth failures abort the run.
func (c *Client) FetchPlanningAreas(ctx context.Context) ([]domain.PlanningArea, error) {
	url := fmt.Sprintf("%s%s?year=%d", c.baseURL, planningAreaPath, c.year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{Source: "planning areas", Err: err}
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Source: "planning areas", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.FetchError{
			Source: "planning areas",
			Err:    fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var results searchResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &domain.FetchError{Source: "planning areas", Err: fmt.Errorf("decode response: %w", err)}
	}

	areas := make([]domain.PlanningArea, 0, len(results.SearchResults))
	for _, rec := range results.SearchResults {
		polygons, err := parseGeometry([]byte(rec.GeoJSON))
		if err != nil {
			slog.Warn("skipping planning area with malformed geometry",
				"area", rec.Name, "error", err)
			continue
		}
		areas = append(areas, domain.PlanningArea{Name: rec.Name, Polygons: polygons})
	}

	return areas, nil
}
