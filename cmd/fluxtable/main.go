// Command fluxtable runs one forecast for a site and prints the result as
// JSON. It is a one-shot version of the iceforecastd pipeline, handy for
// checking a new site or eyeballing the energy balance without standing up
// the service.
//
// Usage:
//
//	go run ./cmd/fluxtable -lat 40.039661 -lon -74.992145 -depth 2
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/wyattreis/philly-ice-forecast/internal/adapter/clearsky"
	"github.com/wyattreis/philly-ice-forecast/internal/adapter/coops"
	"github.com/wyattreis/philly-ice-forecast/internal/adapter/nws"
	"github.com/wyattreis/philly-ice-forecast/internal/adapter/opentopo"
	"github.com/wyattreis/philly-ice-forecast/internal/domain"
	"github.com/wyattreis/philly-ice-forecast/internal/observability"
	"github.com/wyattreis/philly-ice-forecast/internal/pipeline"
)

func main() {
	var (
		lat       = flag.Float64("lat", 40.039661, "site latitude")
		lon       = flag.Float64("lon", -74.992145, "site longitude")
		name      = flag.String("name", "Philadelphia, PA - Baxter Water Intake", "site name")
		depth     = flag.Float64("depth", domain.DefaultDepth, "parcel mixing depth in meters")
		albedo    = flag.Float64("albedo", domain.DefaultAlbedo, "water surface albedo")
		pressure  = flag.Float64("pressure", 1000, "surface pressure in mb")
		turbidity = flag.Float64("turbidity", clearsky.DefaultTurbidity, "atmospheric turbidity factor")
		waterTemp = flag.Float64("water-temp", 0, "observed water temperature in °C (0 queries the station chain)")
		exact     = flag.Bool("exact", false, "convert temperatures exactly instead of truncating to whole °F")
		timeout   = flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	)
	flag.Parse()

	logger := observability.NewLogger("warn", "text")
	metrics := observability.NewMetricsForTesting()

	policy := domain.TruncateWholeDegrees
	if *exact {
		policy = domain.ConvertExact
	}

	fetcher := nws.NewClient("https://forecast.weather.gov/MapClick.php", 30*time.Second, 1, logger)
	elevations := opentopo.NewCachedService(
		opentopo.NewClient("https://api.opentopodata.org/v1/ned10m", 10*time.Second, logger),
	)

	var waterTemps domain.WaterTempSource
	if *waterTemp != 0 {
		waterTemps = fixedWaterTemp(*waterTemp)
	} else {
		waterTemps = coops.NewClient("https://api.tidesandcurrents.noaa.gov/api/prod/datagetter",
			10*time.Second, nil, logger)
	}

	assembler := pipeline.NewAssembler(fetcher, nil, logger, metrics)
	forecaster := pipeline.NewForecaster(
		assembler,
		waterTemps,
		elevations,
		&clearsky.Model{Turbidity: *turbidity},
		pipeline.Params{
			DepthM:     *depth,
			Albedo:     *albedo,
			PressureMB: *pressure,
			Wind:       domain.DefaultWindFunction,
			TempPolicy: policy,
		},
		logger,
		metrics,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := forecaster.Forecast(ctx, domain.Location{Name: *name, Lat: *lat, Lon: *lon})
	if err != nil {
		slog.Error("forecast failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
}

// fixedWaterTemp satisfies domain.WaterTempSource with a constant reading.
type fixedWaterTemp float64

func (f fixedWaterTemp) CurrentWaterTemp(context.Context) (domain.WaterTempReading, error) {
	return domain.WaterTempReading{TempC: float64(f), Station: "override"}, nil
}
