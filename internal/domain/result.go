package domain

import "time"

// ForecastResult is one complete run of the flux pipeline: the decomposed
// energy table plus the derived cooling outputs for a location.
type ForecastResult struct {
	Location    Location           `json:"location"`
	GeneratedAt time.Time          `json:"generated_at"`
	WaterTemp   WaterTempReading   `json:"water_temp"`
	DepthM      float64            `json:"depth_m"`
	Wind        WindFunctionParams `json:"wind_function"`

	Energy *EnergyTable `json:"energy"`
	// CoolingRate is °C per minute, aligned with Energy.Times.
	CoolingRate []Value `json:"cooling_rate"`
	// ParcelTempC is the projected parcel temperature, aligned with
	// Energy.Times.
	ParcelTempC []Value `json:"parcel_temp_c"`
}
