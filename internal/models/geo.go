package models

// Coord is a single point on a route polyline, in lat/lon order.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is one geocoding candidate for a free-text location query.
type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Route is the routing-service result between two coordinates.
type Route struct {
	Geometry        []Coord `json:"geometry"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}
