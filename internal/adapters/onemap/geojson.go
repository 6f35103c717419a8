package onemap

import (
	"encoding/json"
	"fmt"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
)

// geometry is a GeoJSON geometry object. Coordinates are decoded
// lazily since their nesting depth depends on the type.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// parseGeometry converts a GeoJSON Polygon or MultiPolygon document
// into domain polygons. OneMap positions are [lon, lat] and may carry a
// trailing altitude element, which is ignored.
func parseGeometry(data []byte) ([]domain.Polygon, error) {
	var g geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("parse polygon coordinates: %w", err)
		}
		poly, err := toPolygon(rings)
		if err != nil {
			return nil, err
		}
		return []domain.Polygon{poly}, nil

	case "MultiPolygon":
		var multi [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &multi); err != nil {
			return nil, fmt.Errorf("parse multipolygon coordinates: %w", err)
		}
		polygons := make([]domain.Polygon, 0, len(multi))
		for _, rings := range multi {
			poly, err := toPolygon(rings)
			if err != nil {
				return nil, err
			}
			polygons = append(polygons, poly)
		}
		if len(polygons) == 0 {
			return nil, fmt.Errorf("multipolygon with no polygons")
		}
		return polygons, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

// toPolygon maps GeoJSON rings (exterior first, then holes) onto a
// domain.Polygon.
func toPolygon(rings [][][]float64) (domain.Polygon, error) {
	if len(rings) == 0 {
		return domain.Polygon{}, fmt.Errorf("polygon with no rings")
	}

	exterior, err := toRing(rings[0])
	if err != nil {
		return domain.Polygon{}, err
	}

	var holes []domain.Ring
	for _, raw := range rings[1:] {
		hole, err := toRing(raw)
		if err != nil {
			return domain.Polygon{}, err
		}
		holes = append(holes, hole)
	}
	return domain.Polygon{Exterior: exterior, Holes: holes}, nil
}

func toRing(raw [][]float64) (domain.Ring, error) {
	if len(raw) < 3 {
		return nil, fmt.Errorf("ring with %d positions, need at least 3", len(raw))
	}
	ring := make(domain.Ring, 0, len(raw))
	for _, pos := range raw {
		if len(pos) < 2 {
			return nil, fmt.Errorf("position with %d elements, need at least 2", len(pos))
		}
		ring = append(ring, domain.GeoPoint{Lat: pos[1], Lon: pos[0]})
	}
	// GeoJSON rings repeat the first position at the end; the implicit
	// closing edge makes that duplicate redundant.
	if ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring, nil
}
