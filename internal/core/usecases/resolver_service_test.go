package usecases_test

import (
	"errors"
	"testing"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
	"github.com/sgmobility/taxihotspots/internal/core/usecases"
)

func rect(minLat, minLon, maxLat, maxLon float64) domain.Polygon {
	return domain.Polygon{Exterior: domain.Ring{
		{Lat: minLat, Lon: minLon},
		{Lat: minLat, Lon: maxLon},
		{Lat: maxLat, Lon: maxLon},
		{Lat: maxLat, Lon: minLon},
	}}
}

func testAreas() []domain.PlanningArea {
	return []domain.PlanningArea{
		{Name: "Downtown", Polygons: []domain.Polygon{rect(1.27, 103.83, 1.32, 103.87)}},
		{Name: "Bedok", Polygons: []domain.Polygon{rect(1.31, 103.91, 1.34, 103.96)}},
	}
}

func TestResolverService_Resolve(t *testing.T) {
	resolver, err := usecases.NewResolverService(testAreas())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := resolver.Resolve(domain.GeoPoint{Lat: 1.30, Lon: 103.85}); got != "Downtown" {
		t.Errorf("expected Downtown, got %q", got)
	}
	if got := resolver.Resolve(domain.GeoPoint{Lat: 1.32, Lon: 103.93}); got != "Bedok" {
		t.Errorf("expected Bedok, got %q", got)
	}
	if got := resolver.Resolve(domain.GeoPoint{Lat: 1.45, Lon: 103.70}); got != "" {
		t.Errorf("expected no area, got %q", got)
	}
}

func TestResolverService_VertexDeterministic(t *testing.T) {
	// Two areas sharing the vertex (1.0, 103.0): first in dataset order wins.
	areas := []domain.PlanningArea{
		{Name: "West", Polygons: []domain.Polygon{rect(0.9, 102.9, 1.0, 103.0)}},
		{Name: "East", Polygons: []domain.Polygon{rect(1.0, 103.0, 1.1, 103.1)}},
	}
	resolver, err := usecases.NewResolverService(areas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vertex := domain.GeoPoint{Lat: 1.0, Lon: 103.0}
	first := resolver.Resolve(vertex)
	if first != "West" {
		t.Errorf("vertex should resolve to first area in dataset order, got %q", first)
	}
	for i := 0; i < 10; i++ {
		if got := resolver.Resolve(vertex); got != first {
			t.Fatalf("vertex resolution not deterministic: %q then %q", first, got)
		}
	}
}

func TestResolverService_Assign(t *testing.T) {
	resolver, err := usecases.NewResolverService(testAreas())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	positions := []domain.TaxiPosition{
		{Location: domain.GeoPoint{Lat: 1.30, Lon: 103.85}}, // Downtown
		{Location: domain.GeoPoint{Lat: 1.35, Lon: 103.87}}, // outside all polygons
	}

	assigned, unassigned := resolver.Assign(positions)
	if len(assigned) != 1 {
		t.Fatalf("expected 1 area with taxis, got %d", len(assigned))
	}
	if got := len(assigned["Downtown"]); got != 1 {
		t.Errorf("expected Downtown count 1, got %d", got)
	}
	if unassigned != 1 {
		t.Errorf("expected 1 unassigned, got %d", unassigned)
	}
}

func TestResolverService_AssignIdempotent(t *testing.T) {
	resolver, err := usecases.NewResolverService(testAreas())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	positions := []domain.TaxiPosition{
		{Location: domain.GeoPoint{Lat: 1.30, Lon: 103.85}},
		{Location: domain.GeoPoint{Lat: 1.32, Lon: 103.93}},
		{Location: domain.GeoPoint{Lat: 1.45, Lon: 103.70}},
	}

	first, firstUn := resolver.Assign(positions)
	second, secondUn := resolver.Assign(positions)

	if firstUn != secondUn {
		t.Fatalf("unassigned differs between runs: %d vs %d", firstUn, secondUn)
	}
	if len(first) != len(second) {
		t.Fatalf("assignment differs between runs: %d vs %d areas", len(first), len(second))
	}
	for name, pts := range first {
		if len(second[name]) != len(pts) {
			t.Errorf("area %q count differs: %d vs %d", name, len(pts), len(second[name]))
		}
	}
}

func TestNewResolverService_EmptyDataset(t *testing.T) {
	var lookupErr *domain.LookupError

	_, err := usecases.NewResolverService(nil)
	if !errors.As(err, &lookupErr) {
		t.Errorf("expected LookupError for empty dataset, got %v", err)
	}

	// Areas present but all without usable boundaries.
	_, err = usecases.NewResolverService([]domain.PlanningArea{{Name: "Broken"}})
	if !errors.As(err, &lookupErr) {
		t.Errorf("expected LookupError for boundary-less dataset, got %v", err)
	}
}
