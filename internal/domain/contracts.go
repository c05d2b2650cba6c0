package domain

import (
	"context"
	"time"
)

// WindowFetcher fetches one fixed-length forecast window starting at a
// lead-time offset in hours.
type WindowFetcher interface {
	FetchWindow(ctx context.Context, lat, lon float64, leadHours int) (ForecastWindow, error)
}

// ClearSkyModel supplies clear-sky global horizontal irradiance (W/m²)
// aligned index-for-index with the given timestamps.
type ClearSkyModel interface {
	GHI(loc Location, times []time.Time) ([]float64, error)
}

// ElevationService resolves site elevation in meters.
type ElevationService interface {
	Elevation(ctx context.Context, lat, lon float64) (float64, error)
}

// WaterTempSource resolves the current observed water temperature, falling
// back to a default when no station reports.
type WaterTempSource interface {
	CurrentWaterTemp(ctx context.Context) (WaterTempReading, error)
}
