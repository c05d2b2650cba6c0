package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
	"github.com/wyattreis/philly-ice-forecast/internal/observability"
)

// ResultStore keeps completed forecast results for the API.
type ResultStore interface {
	Put(result *domain.ForecastResult)
}

// ResultPublisher pushes completed forecast results to an external sink.
type ResultPublisher interface {
	Publish(ctx context.Context, result *domain.ForecastResult) error
}

// Runner executes the forecast on a fixed interval, storing each result and
// optionally publishing it.
type Runner struct {
	forecaster *Forecaster
	location   domain.Location
	store      ResultStore
	publisher  ResultPublisher // nil disables publishing
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics

	scheduler *gocron.Scheduler
	ready     atomic.Bool
}

// NewRunner creates a Runner. publisher may be nil.
func NewRunner(
	forecaster *Forecaster,
	location domain.Location,
	store ResultStore,
	publisher ResultPublisher,
	interval time.Duration,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Runner {
	return &Runner{
		forecaster: forecaster,
		location:   location,
		store:      store,
		publisher:  publisher,
		interval:   interval,
		runTimeout: interval,
		logger:     logger,
		metrics:    metrics,
		scheduler:  gocron.NewScheduler(time.UTC),
	}
}

// CheckReadiness returns nil once at least one forecast has completed.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no forecast has completed yet")
	}
	return nil
}

// Run executes one forecast immediately, then repeats on the configured
// interval until the context is cancelled. A failed run logs and waits for
// the next tick; upstream outages are expected to be transient.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("forecast runner started",
		"location", r.location.Name,
		"interval", r.interval,
	)

	r.runOnce(ctx)

	_, err := r.scheduler.Every(r.interval).Do(func() {
		r.runOnce(ctx)
	})
	if err != nil {
		return err
	}
	r.scheduler.StartAsync()

	<-ctx.Done()
	r.scheduler.Stop()
	r.logger.Info("forecast runner stopping", "reason", ctx.Err())
	return nil
}

func (r *Runner) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	result, err := r.forecaster.Forecast(runCtx, r.location)
	if err != nil {
		r.logger.Error("forecast run failed", "location", r.location.Name, "error", err)
		return
	}

	r.store.Put(result)
	r.ready.Store(true)

	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(runCtx, result); err != nil {
		r.metrics.PublishErrors.Inc()
		r.logger.Error("publish forecast failed", "location", r.location.Name, "error", err)
		return
	}
	r.metrics.ResultsPublished.Inc()
}
