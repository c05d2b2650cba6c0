package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast pipeline.
type Metrics struct {
	WindowsFetched    prometheus.Counter
	WindowFetchErrors prometheus.Counter
	AssemblyDuration  prometheus.Histogram

	ForecastRuns     *prometheus.CounterVec // label: outcome={success,error}
	ForecastDuration prometheus.Histogram
	ForecastRows     prometheus.Histogram
	LastForecastTime prometheus.Gauge

	WaterTempCelsius *prometheus.GaugeVec // label: station
	ResultsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.WindowsFetched,
		m.WindowFetchErrors,
		m.AssemblyDuration,
		m.ForecastRuns,
		m.ForecastDuration,
		m.ForecastRows,
		m.LastForecastTime,
		m.WaterTempCelsius,
		m.ResultsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		WindowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_flux",
			Name:      "forecast_windows_fetched_total",
			Help:      "Total 48-hour forecast windows fetched from the digital forecast feed.",
		}),
		WindowFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_flux",
			Name:      "forecast_window_fetch_errors_total",
			Help:      "Total forecast window fetch or parse failures.",
		}),
		AssemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "river_flux",
			Name:      "assembly_duration_seconds",
			Help:      "Duration of fetching and assembling the full multi-window series.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		ForecastRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "river_flux",
			Name:      "forecast_runs_total",
			Help:      "Forecast pipeline runs by outcome.",
		}, []string{"outcome"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "river_flux",
			Name:      "forecast_duration_seconds",
			Help:      "Duration of a complete fetch-assemble-compute cycle.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ForecastRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "river_flux",
			Name:      "forecast_rows",
			Help:      "Hourly rows in the assembled forecast series.",
			Buckets:   []float64{24, 48, 96, 120, 144, 168, 192},
		}),
		LastForecastTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "river_flux",
			Name:      "last_forecast_timestamp_seconds",
			Help:      "Unix time of the most recent successful forecast run.",
		}),
		WaterTempCelsius: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "river_flux",
			Name:      "water_temp_celsius",
			Help:      "Observed water temperature used to seed the flux model.",
		}, []string{"station"}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_flux",
			Name:      "results_published_total",
			Help:      "Forecast results published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_flux",
			Name:      "publish_errors_total",
			Help:      "Failures publishing forecast results.",
		}),
	}
}
