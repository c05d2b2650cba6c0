package domain

import "time"

// DefaultWaterTempC is assumed when no observation station reports.
const DefaultWaterTempC = 2.0

// WaterTempReading is the observed water temperature used to seed the flux
// model. Station is the reporting station's name, or "default" when the
// fallback value was used.
type WaterTempReading struct {
	TempC   float64   `json:"temp_c"`
	Station string    `json:"station"`
	Time    time.Time `json:"time,omitzero"`
}

// StationReading is one station's latest observation, for display alongside
// the forecast.
type StationReading struct {
	Station   string    `json:"station"`
	Waterbody string    `json:"waterbody"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	TempF     float64   `json:"temp_f"`
	TempC     float64   `json:"temp_c"`
	Time      time.Time `json:"time"`
}
