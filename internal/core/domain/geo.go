package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Ring is an ordered sequence of coordinates forming a closed boundary.
// The closing edge from the last vertex back to the first is implicit.
type Ring []GeoPoint

// Polygon is a single closed boundary: one exterior ring and zero or
// more interior rings (holes).
type Polygon struct {
	Exterior Ring   `json:"exterior"`
	Holes    []Ring `json:"holes,omitempty"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Bounds returns the bounding box of the ring. An empty ring yields the
// zero Bounds.
func (r Ring) Bounds() Bounds {
	if len(r) == 0 {
		return Bounds{}
	}
	b := Bounds{MinLat: r[0].Lat, MinLon: r[0].Lon, MaxLat: r[0].Lat, MaxLon: r[0].Lon}
	for _, p := range r[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	return b
}

// Contains reports whether the point lies inside or on the box.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}
