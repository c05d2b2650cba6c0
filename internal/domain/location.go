package domain

import "fmt"

// Location identifies the river site a forecast is computed for. Elevation
// is resolved once per run by the elevation service and passed by value; no
// caching or invalidation lives here.
type Location struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation float64 `json:"elevation_m"`
}

// Key returns a stable identifier for store and message keys.
func (l Location) Key() string {
	return fmt.Sprintf("%.6f,%.6f", l.Lat, l.Lon)
}

// Resolved reports whether the location carries usable coordinates.
func (l Location) Resolved() bool {
	return l.Lat != 0 || l.Lon != 0
}
