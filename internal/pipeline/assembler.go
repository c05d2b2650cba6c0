package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
	"github.com/wyattreis/philly-ice-forecast/internal/observability"
)

// DefaultLeadHours are the window offsets that stitch into a continuous
// forecast of roughly six and a half days. The final 107-hour offset
// deliberately overlaps the 96-hour window to cover the feed's ragged tail.
var DefaultLeadHours = []int{0, 48, 96, 107}

// Assembler fetches the configured forecast windows and stitches them into
// one hourly series.
type Assembler struct {
	fetcher domain.WindowFetcher
	leads   []int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAssembler creates an Assembler. A nil or empty leads slice selects
// DefaultLeadHours.
func NewAssembler(fetcher domain.WindowFetcher, leads []int, logger *slog.Logger, metrics *observability.Metrics) *Assembler {
	if len(leads) == 0 {
		leads = DefaultLeadHours
	}
	return &Assembler{
		fetcher: fetcher,
		leads:   leads,
		logger:  logger,
		metrics: metrics,
	}
}

// Assemble fetches every window and merges them. Windows are fetched
// sequentially in lead order; overlap precedence follows that order, with
// the nearest-term window winning. Any failed fetch fails the whole
// assembly, since a hole in the middle of the series would silently skew the
// cooling integration downstream.
func (a *Assembler) Assemble(ctx context.Context, loc domain.Location) (*domain.ForecastSeries, error) {
	start := time.Now()

	windows := make([]domain.ForecastWindow, 0, len(a.leads))
	for _, lead := range a.leads {
		w, err := a.fetcher.FetchWindow(ctx, loc.Lat, loc.Lon, lead)
		if err != nil {
			a.metrics.WindowFetchErrors.Inc()
			return nil, fmt.Errorf("fetch window at lead %dh: %w", lead, err)
		}
		a.metrics.WindowsFetched.Inc()
		windows = append(windows, w)
	}

	series, err := domain.AssembleSeries(windows)
	if err != nil {
		return nil, err
	}

	a.metrics.AssemblyDuration.Observe(time.Since(start).Seconds())
	a.logger.Debug("assembled forecast series",
		"windows", len(windows),
		"rows", series.Len(),
	)
	return series, nil
}
