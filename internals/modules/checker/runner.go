package checker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pingdeck/internals/modules/alert"
	"pingdeck/internals/modules/monitor"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Store interface {
	DueMonitors(ctx context.Context) ([]monitor.Monitor, error)
	SaveCycle(ctx context.Context, m monitor.Monitor, res ProbeResult) (CycleState, error)
}

type StatusCache interface {
	StoreStatus(ctx context.Context, monitorID uuid.UUID, status string, responseTimeMs int64, checkedAt time.Time) error
}

type URLProber interface {
	Probe(ctx context.Context, url string) ProbeResult
}

// Runner drives one batch: select due monitors, probe them concurrently,
// persist each cycle and hand decided alerts to the event channel. One
// monitor failing never stops the rest of the batch.
type Runner struct {
	store           Store
	prober          URLProber
	cache           StatusCache
	events          chan<- alert.Event
	concurrency     int
	slowThresholdMs int64
	logger          *zerolog.Logger
}

func NewRunner(
	store Store,
	prober URLProber,
	cache StatusCache,
	events chan<- alert.Event,
	concurrency int,
	slowThresholdMs int64,
	logger *zerolog.Logger,
) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{
		store:           store,
		prober:          prober,
		cache:           cache,
		events:          events,
		concurrency:     concurrency,
		slowThresholdMs: slowThresholdMs,
		logger:          logger,
	}
}

func (r *Runner) RunBatch(ctx context.Context) ([]Outcome, error) {
	monitors, err := r.store.DueMonitors(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(monitors))
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for i, m := range monitors {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int, m monitor.Monitor) {
			defer wg.Done()
			defer func() { <-sem }()

			outcomes[i] = r.runOne(ctx, m)
		}(i, m)
	}
	wg.Wait()

	return outcomes, nil
}

func (r *Runner) runOne(ctx context.Context, m monitor.Monitor) Outcome {
	res := r.prober.Probe(ctx, m.URL)

	state, err := r.store.SaveCycle(ctx, m, res)
	if err != nil {
		r.logger.Error().Err(err).
			Str("monitor_id", m.ID.String()).
			Str("url", m.URL).
			Msg("check cycle failed")

		r.emit(ctx, alert.Event{
			MonitorID:   m.ID,
			UserID:      m.UserID,
			MonitorName: m.Name,
			Type:        alert.TypeErr,
			Message:     fmt.Sprintf("Monitoring error for %s: %v", m.Name, err),
		})

		return Outcome{
			MonitorID: m.ID.String(),
			Name:      m.Name,
			Error:     err.Error(),
		}
	}

	// live status is best effort, postgres already has the truth
	if err := r.cache.StoreStatus(ctx, m.ID, string(res.Status), res.ResponseTimeMs, res.CheckedAt); err != nil {
		r.logger.Warn().Err(err).Str("monitor_id", m.ID.String()).Msg("failed to store live status")
	}

	if d := Decide(m, state.Recent, res, r.slowThresholdMs); d != nil {
		r.emit(ctx, alert.Event{
			MonitorID:   m.ID,
			UserID:      m.UserID,
			MonitorName: m.Name,
			Type:        d.Type,
			Message:     d.Message,
		})
	}

	return Outcome{
		MonitorID:      m.ID.String(),
		Name:           m.Name,
		Status:         string(res.Status),
		ResponseTimeMs: res.ResponseTimeMs,
		UptimePercent:  state.Uptime,
	}
}

func (r *Runner) emit(ctx context.Context, ev alert.Event) {
	select {
	case r.events <- ev:
	case <-ctx.Done():
		r.logger.Warn().Str("monitor_id", ev.MonitorID.String()).Msg("dropping alert event on shutdown")
	}
}
