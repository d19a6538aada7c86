package model

// GeoPoint is a resolved WGS-84 coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// DistanceResult is the geodesic distance between two resolved points.
type DistanceResult struct {
	From  GeoPoint `json:"from" yaml:"from"`
	To    GeoPoint `json:"to" yaml:"to"`
	Miles float64  `json:"miles" yaml:"miles"`
}
