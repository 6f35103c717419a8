package usecases

import (
	"github.com/sgmobility/taxihotspots/internal/core/domain"
	"github.com/sgmobility/taxihotspots/internal/pkg/geospatial"
)

// ResolverService assigns taxi positions to the planning area containing
// them. Areas are tested in dataset order and the first containing area
// wins, which also makes boundary-exact positions deterministic.
type ResolverService struct {
	areas  []domain.PlanningArea
	bounds []domain.Bounds // per-area bounding boxes, cheap rejection test
}

// NewResolverService builds a resolver over the given planning areas.
// Returns a LookupError if the dataset has no usable boundaries.
func NewResolverService(areas []domain.PlanningArea) (*ResolverService, error) {
	usable := 0
	bounds := make([]domain.Bounds, len(areas))
	for i, area := range areas {
		if len(area.Polygons) == 0 {
			continue
		}
		usable++
		b := area.Polygons[0].Exterior.Bounds()
		for _, poly := range area.Polygons[1:] {
			pb := poly.Exterior.Bounds()
			if pb.MinLat < b.MinLat {
				b.MinLat = pb.MinLat
			}
			if pb.MinLon < b.MinLon {
				b.MinLon = pb.MinLon
			}
			if pb.MaxLat > b.MaxLat {
				b.MaxLat = pb.MaxLat
			}
			if pb.MaxLon > b.MaxLon {
				b.MaxLon = pb.MaxLon
			}
		}
		bounds[i] = b
	}
	if usable == 0 {
		return nil, &domain.LookupError{Reason: "no planning areas with usable boundaries"}
	}
	return &ResolverService{areas: areas, bounds: bounds}, nil
}

// Resolve returns the name of the planning area containing p, or ""
// if no area contains it.
func (r *ResolverService) Resolve(p domain.GeoPoint) string {
	for i := range r.areas {
		if len(r.areas[i].Polygons) == 0 {
			continue
		}
		if !r.bounds[i].Contains(p) {
			continue
		}
		if geospatial.AreaContains(&r.areas[i], p) {
			return r.areas[i].Name
		}
	}
	return ""
}

// Assign resolves every position and groups them by area name.
// Positions outside all areas are counted as unassigned and excluded
// from the returned groups.
func (r *ResolverService) Assign(positions []domain.TaxiPosition) (map[string][]domain.GeoPoint, int) {
	assigned := make(map[string][]domain.GeoPoint)
	unassigned := 0
	for _, pos := range positions {
		name := r.Resolve(pos.Location)
		if name == "" {
			unassigned++
			continue
		}
		assigned[name] = append(assigned[name], pos.Location)
	}
	return assigned, unassigned
}
