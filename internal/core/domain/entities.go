package domain

// TaxiPosition is a single available taxi's reported location. Positions
// are ephemeral: fetched once per run and discarded after area assignment.
type TaxiPosition struct {
	Location GeoPoint `json:"location"`
}

// PlanningArea is an official Singapore geographic subdivision with a
// named boundary. Loaded once per run, immutable afterwards.
type PlanningArea struct {
	Name     string    `json:"name"`
	Polygons []Polygon `json:"polygons"`
}

// AreaCount is one row of the final report: a planning area ranked by
// the number of taxis currently inside it.
type AreaCount struct {
	Rank        int      `json:"rank"`
	Name        string   `json:"name"`
	Count       int      `json:"count"`
	Center      GeoPoint `json:"center"`
	Description string   `json:"description"`
	MapsLink    string   `json:"maps_link"`
}

// Report is the aggregated result of one pipeline run.
type Report struct {
	TotalTaxis int         `json:"total_taxis"`
	Unassigned int         `json:"unassigned"`
	Areas      []AreaCount `json:"areas"`
}
