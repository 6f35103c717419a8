package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
	"github.com/sgmobility/taxihotspots/internal/core/ports"
	"github.com/sgmobility/taxihotspots/internal/pkg/geospatial"
)

const (
	areaCacheKey      = "areas:v1"
	areaCacheTTL      = 6 * 3600  // boundaries change about once a year
	descCacheTTL      = 7 * 86400 // Nominatim asks clients to cache results
	geocodeWorkers    = 2
	unknownPlaceLabel = "Unknown"
)

// HotspotService runs the full pipeline: fetch taxi positions and
// planning areas, assign positions to areas, rank areas by taxi count
// and annotate the top entries with a description and a map link.
type HotspotService struct {
	taxis    ports.TaxiSource
	areas    ports.PlanningAreaSource
	geocoder ports.Geocoder
	cache    ports.CacheService // optional, nil disables caching
}

// NewHotspotService creates a new HotspotService. geocoder and cache
// may be nil; rows then carry the "Unknown" description and every run
// refetches the boundaries.
func NewHotspotService(
	taxis ports.TaxiSource,
	areas ports.PlanningAreaSource,
	geocoder ports.Geocoder,
	cache ports.CacheService,
) *HotspotService {
	return &HotspotService{taxis: taxis, areas: areas, geocoder: geocoder, cache: cache}
}

// TopAreas produces the report of the topN planning areas with the most
// available taxis. Fetch failures and an unusable area dataset abort
// the run; geocode failures only degrade individual rows.
func (s *HotspotService) TopAreas(ctx context.Context, topN int) (*domain.Report, error) {
	if topN <= 0 {
		topN = 10
	}

	positions, areas, err := s.fetchBoth(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("fetched taxi positions", "count", len(positions))
	slog.Info("fetched planning areas", "count", len(areas))

	resolver, err := NewResolverService(areas)
	if err != nil {
		return nil, err
	}

	slog.Info("mapping taxis to planning areas")
	assigned, unassigned := resolver.Assign(positions)
	if len(assigned) == 0 {
		return nil, domain.ErrEmptyResult
	}

	ranked := rankAreas(assigned, topN)
	s.describeAreas(ctx, ranked)

	return &domain.Report{
		TotalTaxis: len(positions),
		Unassigned: unassigned,
		Areas:      ranked,
	}, nil
}

// fetchBoth retrieves taxi positions and planning areas concurrently.
// Resolution needs both, so it waits for both and fails on the first
// error encountered.
func (s *HotspotService) fetchBoth(ctx context.Context) ([]domain.TaxiPosition, []domain.PlanningArea, error) {
	var (
		wg        sync.WaitGroup
		positions []domain.TaxiPosition
		areas     []domain.PlanningArea
		taxiErr   error
		areaErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		positions, taxiErr = s.taxis.FetchTaxiPositions(ctx)
	}()
	go func() {
		defer wg.Done()
		areas, areaErr = s.fetchAreasCached(ctx)
	}()
	wg.Wait()

	if taxiErr != nil {
		return nil, nil, taxiErr
	}
	if areaErr != nil {
		return nil, nil, areaErr
	}
	return positions, areas, nil
}

// fetchAreasCached reads the planning-area dataset through the cache
// when one is configured.
func (s *HotspotService) fetchAreasCached(ctx context.Context) ([]domain.PlanningArea, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, areaCacheKey); err == nil {
			var areas []domain.PlanningArea
			if err := json.Unmarshal(data, &areas); err == nil && len(areas) > 0 {
				slog.Debug("planning areas served from cache", "count", len(areas))
				return areas, nil
			}
		}
	}

	areas, err := s.areas.FetchPlanningAreas(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(areas) > 0 {
		if data, err := json.Marshal(areas); err == nil {
			_ = s.cache.Set(ctx, areaCacheKey, data, areaCacheTTL)
		}
	}
	return areas, nil
}

// rankAreas turns per-area position groups into ranked report rows:
// count descending, name ascending on equal counts, first topN only.
func rankAreas(assigned map[string][]domain.GeoPoint, topN int) []domain.AreaCount {
	rows := make([]domain.AreaCount, 0, len(assigned))
	for name, points := range assigned {
		center := geospatial.MeanPoint(points)
		rows = append(rows, domain.AreaCount{
			Name:        name,
			Count:       len(points),
			Center:      center,
			Description: unknownPlaceLabel,
			MapsLink:    mapsLink(center),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})

	if len(rows) > topN {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// describeAreas fills in reverse-geocoded descriptions for the ranked
// rows, at most geocodeWorkers requests in flight. Failures leave the
// row at "Unknown".
func (s *HotspotService) describeAreas(ctx context.Context, rows []domain.AreaCount) {
	if s.geocoder == nil || len(rows) == 0 {
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, geocodeWorkers)

	for i := range rows {
		wg.Add(1)
		go func(row *domain.AreaCount) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			desc, err := s.describeCached(ctx, row.Center)
			if err != nil {
				slog.Warn("reverse geocoding failed",
					"area", row.Name, "lat", row.Center.Lat, "lon", row.Center.Lon, "error", err)
				return
			}
			row.Description = desc
		}(&rows[i])
	}
	wg.Wait()
}

// describeCached reads a description through the cache when one is
// configured. Coordinates are bucketed to ~11 m so nearby centers share
// an entry across runs.
func (s *HotspotService) describeCached(ctx context.Context, p domain.GeoPoint) (string, error) {
	key := fmt.Sprintf("geo:desc:%.4f:%.4f", p.Lat, p.Lon)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && len(data) > 0 {
			return string(data), nil
		}
	}

	desc, err := s.geocoder.Describe(ctx, p)
	if err != nil {
		return "", err
	}

	if s.cache != nil && desc != "" && desc != unknownPlaceLabel {
		_ = s.cache.Set(ctx, key, []byte(desc), descCacheTTL)
	}
	return desc, nil
}

// mapsLink builds a Google Maps search link for the given point.
func mapsLink(p domain.GeoPoint) string {
	return "https://www.google.com/maps/search/?api=1&query=" +
		strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
