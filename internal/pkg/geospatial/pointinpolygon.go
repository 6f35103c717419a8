package geospatial

import "github.com/sgmobility/taxihotspots/internal/core/domain"

// RingContains reports whether p lies inside the ring, using the
// ray-casting (even-odd) rule with a horizontal ray towards +lon.
// Points exactly on an edge or vertex count as inside, so boundary hits
// resolve to whichever ring is tested first.
func RingContains(r domain.Ring, p domain.GeoPoint) bool {
	if len(r) < 3 {
		return false
	}

	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i, j = i+1, i {
		a, b := r[i], r[j]

		if onSegment(a, b, p) {
			return true
		}

		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			// Longitude where the edge crosses the ray's latitude.
			cross := (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lon
			if p.Lon < cross {
				inside = !inside
			}
		}
	}
	return inside
}

// PolygonContains reports whether p lies inside the polygon's exterior
// ring and outside all of its holes.
func PolygonContains(poly domain.Polygon, p domain.GeoPoint) bool {
	if !RingContains(poly.Exterior, p) {
		return false
	}
	for _, hole := range poly.Holes {
		if RingContains(hole, p) {
			return false
		}
	}
	return true
}

// AreaContains reports whether p lies inside any polygon of the area.
func AreaContains(area *domain.PlanningArea, p domain.GeoPoint) bool {
	for i := range area.Polygons {
		if PolygonContains(area.Polygons[i], p) {
			return true
		}
	}
	return false
}

// MeanPoint returns the arithmetic mean of the given points. Adequate
// as a display anchor at city scale; not a true polygon centroid.
func MeanPoint(points []domain.GeoPoint) domain.GeoPoint {
	if len(points) == 0 {
		return domain.GeoPoint{}
	}
	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return domain.GeoPoint{Lat: lat / n, Lon: lon / n}
}

const eps = 1e-12

// onSegment reports whether p lies on the segment a-b.
func onSegment(a, b, p domain.GeoPoint) bool {
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	if cross > eps || cross < -eps {
		return false
	}
	if p.Lat < min(a.Lat, b.Lat)-eps || p.Lat > max(a.Lat, b.Lat)+eps {
		return false
	}
	if p.Lon < min(a.Lon, b.Lon)-eps || p.Lon > max(a.Lon, b.Lon)+eps {
		return false
	}
	return true
}
