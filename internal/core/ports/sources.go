package ports

import (
	"context"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
)

// TaxiSource fetches the current set of available taxi positions.
type TaxiSource interface {
	FetchTaxiPositions(ctx context.Context) ([]domain.TaxiPosition, error)
}

// PlanningAreaSource fetches planning-area boundary polygons.
type PlanningAreaSource interface {
	FetchPlanningAreas(ctx context.Context) ([]domain.PlanningArea, error)
}

// Geocoder turns a coordinate into a human-readable place description.
type Geocoder interface {
	Describe(ctx context.Context, p domain.GeoPoint) (string, error)
}
