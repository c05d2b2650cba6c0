package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
	"github.com/wyattreis/philly-ice-forecast/internal/observability"
)

// Params are the per-run scalar knobs of the flux and cooling models.
type Params struct {
	DepthM     float64
	Albedo     float64
	PressureMB float64
	Wind       domain.WindFunctionParams
	TempPolicy domain.TemperaturePolicy
}

// Forecaster runs one complete forecast: observed water temperature, site
// elevation, assembled forecast series, clear-sky irradiance, flux
// decomposition, and the derived cooling projections.
type Forecaster struct {
	assembler  *Assembler
	waterTemps domain.WaterTempSource
	elevations domain.ElevationService
	clearSky   domain.ClearSkyModel
	params     Params
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewForecaster creates a Forecaster.
func NewForecaster(
	assembler *Assembler,
	waterTemps domain.WaterTempSource,
	elevations domain.ElevationService,
	clearSky domain.ClearSkyModel,
	params Params,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Forecaster {
	return &Forecaster{
		assembler:  assembler,
		waterTemps: waterTemps,
		elevations: elevations,
		clearSky:   clearSky,
		params:     params,
		logger:     logger,
		metrics:    metrics,
	}
}

// Forecast computes a ForecastResult for the location.
func (f *Forecaster) Forecast(ctx context.Context, loc domain.Location) (*domain.ForecastResult, error) {
	start := time.Now()

	result, err := f.forecast(ctx, loc)
	if err != nil {
		f.metrics.ForecastRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	f.metrics.ForecastRuns.WithLabelValues("success").Inc()
	f.metrics.ForecastDuration.Observe(time.Since(start).Seconds())
	f.metrics.ForecastRows.Observe(float64(len(result.Energy.Times)))
	f.metrics.LastForecastTime.Set(float64(result.GeneratedAt.Unix()))

	f.logger.Info("forecast complete",
		"location", loc.Name,
		"rows", len(result.Energy.Times),
		"water_temp_c", result.WaterTemp.TempC,
		"water_temp_station", result.WaterTemp.Station,
		"duration", time.Since(start),
	)
	return result, nil
}

func (f *Forecaster) forecast(ctx context.Context, loc domain.Location) (*domain.ForecastResult, error) {
	if !loc.Resolved() {
		return nil, domain.ErrNoLocation
	}

	waterTemp, err := f.waterTemps.CurrentWaterTemp(ctx)
	if err != nil {
		return nil, fmt.Errorf("water temperature: %w", err)
	}
	f.metrics.WaterTempCelsius.WithLabelValues(waterTemp.Station).Set(waterTemp.TempC)

	elevation, err := f.elevations.Elevation(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return nil, fmt.Errorf("elevation: %w", err)
	}
	loc.Elevation = elevation

	series, err := f.assembler.Assemble(ctx, loc)
	if err != nil {
		return nil, err
	}

	ghi, err := f.clearSky.GHI(loc, series.Times)
	if err != nil {
		return nil, fmt.Errorf("clear-sky irradiance: %w", err)
	}

	samples, err := domain.ComputeFluxes(series, ghi, domain.FluxInputs{
		WaterTempC: waterTemp.TempC,
		Albedo:     f.params.Albedo,
		PressureMB: f.params.PressureMB,
		Wind:       f.params.Wind,
		TempPolicy: f.params.TempPolicy,
	})
	if err != nil {
		return nil, err
	}

	energy, err := domain.BuildEnergyTable(series.Times, samples)
	if err != nil {
		return nil, err
	}

	rates, err := domain.CoolingRateSeries(energy.NetFluxColumn(), f.params.DepthM)
	if err != nil {
		return nil, err
	}

	return &domain.ForecastResult{
		Location:    loc,
		GeneratedAt: domain.Clock().Now().UTC(),
		WaterTemp:   waterTemp,
		DepthM:      f.params.DepthM,
		Wind:        f.params.Wind,
		Energy:      energy,
		CoolingRate: rates,
		ParcelTempC: domain.ParcelCooling(rates, waterTemp.TempC),
	}, nil
}
