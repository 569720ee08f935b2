package monitor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pingdeck/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Store interface {
	Create(ctx context.Context, cmd CreateMonitorCmd) (Monitor, error)
	GetByID(ctx context.Context, monitorID uuid.UUID) (Monitor, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Monitor, error)
	ExistsByUserAndURL(ctx context.Context, userID uuid.UUID, url string) (bool, error)
	Delete(ctx context.Context, userID, monitorID uuid.UUID) (bool, error)
}

// SubscriptionGate enforces the caller's plan before a monitor is created.
type SubscriptionGate interface {
	CheckMonitorAllowance(ctx context.Context, userID uuid.UUID, intervalSec int32) error
}

type Service struct {
	store  Store
	gate   SubscriptionGate
	cache  Cache
	logger *zerolog.Logger
}

func NewService(store Store, gate SubscriptionGate, cache Cache, logger *zerolog.Logger) *Service {
	return &Service{
		store:  store,
		gate:   gate,
		cache:  cache,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateMonitorCmd) (Monitor, error) {
	const op string = "service.monitor.create"

	if err := s.gate.CheckMonitorAllowance(ctx, cmd.UserID, cmd.IntervalSec); err != nil {
		return Monitor{}, err
	}

	exists, err := s.store.ExistsByUserAndURL(ctx, cmd.UserID, cmd.URL)
	if err != nil {
		return Monitor{}, err
	}
	if exists {
		return Monitor{}, &apperror.Error{
			Kind:    apperror.Conflict,
			Op:      op,
			Message: fmt.Sprintf("a monitor for %s already exists", cmd.URL),
		}
	}

	m, err := s.store.Create(ctx, cmd)
	if err != nil {
		return Monitor{}, err
	}

	// cache miss on the next cycle just falls back to postgres
	if err := s.cache.SetMonitor(ctx, m); err != nil {
		s.logger.Warn().Err(err).Str("monitor_id", m.ID.String()).Msg("failed to cache monitor")
	}

	return m, nil
}

// GetByID serves reads from the redis monitor cache when possible and
// falls back to postgres, repopulating the cache on a miss. The live
// status overlay keeps a cached copy from showing stale probe state.
func (s *Service) GetByID(ctx context.Context, userID, monitorID uuid.UUID) (Monitor, error) {
	const op string = "service.monitor.get_by_id"

	m, ok := s.cache.GetMonitor(ctx, monitorID)
	if !ok {
		var err error
		m, err = s.store.GetByID(ctx, monitorID)
		if err != nil {
			return Monitor{}, err
		}
		if err := s.cache.SetMonitor(ctx, m); err != nil {
			s.logger.Warn().Err(err).Str("monitor_id", m.ID.String()).Msg("failed to cache monitor")
		}
	}
	if m.UserID != userID {
		return Monitor{}, &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "monitor not found",
		}
	}

	s.mergeLiveStatus(ctx, &m)

	return m, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Monitor, error) {
	monitors, err := s.store.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range monitors {
		s.mergeLiveStatus(ctx, &monitors[i])
	}

	return monitors, nil
}

func (s *Service) Delete(ctx context.Context, userID, monitorID uuid.UUID) error {
	const op string = "service.monitor.delete"

	deleted, err := s.store.Delete(ctx, userID, monitorID)
	if err != nil {
		return err
	}
	if !deleted {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "monitor not found",
		}
	}

	if err := s.cache.DelMonitor(ctx, monitorID); err != nil {
		s.logger.Warn().Err(err).Str("monitor_id", monitorID.String()).Msg("failed to evict monitor from cache")
	}
	if err := s.cache.DelStatus(ctx, monitorID); err != nil {
		s.logger.Warn().Err(err).Str("monitor_id", monitorID.String()).Msg("failed to evict monitor status from cache")
	}

	return nil
}

// mergeLiveStatus overlays the latest probe result from redis, which may be
// fresher than the row read from postgres. Redis being down is not an error
// here, the database copy is good enough.
func (s *Service) mergeLiveStatus(ctx context.Context, m *Monitor) {
	live, err := s.cache.GetStatus(ctx, m.ID)
	if err != nil || len(live) == 0 {
		return
	}

	if status, ok := live["status"]; ok && status != "" {
		m.Status = Status(status)
	}
	if raw, ok := live["response_time_ms"]; ok {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			m.LastResponseTimeMs = &ms
		}
	}
	if raw, ok := live["checked_at"]; ok {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			m.LastChecked = time.Unix(unix, 0).UTC()
		}
	}
}
