package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pingdeck/internals/modules/notification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Store interface {
	Create(ctx context.Context, ev Event) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Alert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) error
}

type Notifier interface {
	Record(ctx context.Context, n notification.Notification) (uuid.UUID, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, oa notification.OutboundAlert)
}

type UserEmailLookup interface {
	GetEmailByID(ctx context.Context, userID uuid.UUID) (string, error)
}

// Service drains the event channel the check pipeline writes to. Each
// event becomes an alert row plus a notification row, then fans out to the
// user's channels. A failed event is logged and dropped, it never blocks
// the pipeline.
type Service struct {
	store      Store
	notifier   Notifier
	dispatcher Dispatcher
	emails     UserEmailLookup
	events     <-chan Event
	workers    int
	logger     *zerolog.Logger
	wg         sync.WaitGroup
}

func NewService(
	store Store,
	notifier Notifier,
	dispatcher Dispatcher,
	emails UserEmailLookup,
	events <-chan Event,
	workers int,
	logger *zerolog.Logger,
) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		store:      store,
		notifier:   notifier,
		dispatcher: dispatcher,
		emails:     emails,
		events:     events,
		workers:    workers,
		logger:     logger,
	}
}

// Start launches the worker pool. Workers exit when the event channel is
// closed, Wait blocks until in-flight events are done.
func (s *Service) Start(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for ev := range s.events {
				s.process(ctx, ev)
			}
		}()
	}
}

func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) process(ctx context.Context, ev Event) {
	// detach from the worker context so shutdown does not lose a
	// half-processed event
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if _, err := s.store.Create(ctx, ev); err != nil {
		s.logger.Error().Err(err).
			Str("monitor_id", ev.MonitorID.String()).
			Str("type", string(ev.Type)).
			Msg("failed to persist alert")
		return
	}

	if _, err := s.notifier.Record(ctx, notification.Notification{
		UserID:    ev.UserID,
		MonitorID: ev.MonitorID,
		Type:      notification.TypeAlert,
		Title:     fmt.Sprintf("Monitor Alert: %s", ev.MonitorName),
		Message:   ev.Message,
	}); err != nil {
		s.logger.Error().Err(err).
			Str("monitor_id", ev.MonitorID.String()).
			Msg("failed to record notification")
	}

	email, err := s.emails.GetEmailByID(ctx, ev.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ev.UserID.String()).Msg("failed to resolve user email")
	}

	s.dispatcher.Dispatch(ctx, notification.OutboundAlert{
		UserID:      ev.UserID,
		UserEmail:   email,
		MonitorID:   ev.MonitorID,
		MonitorName: ev.MonitorName,
		Kind:        string(ev.Type),
		Message:     ev.Message,
		Critical:    ev.Type.Critical(),
	})
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	return s.store.MarkRead(ctx, userID, alertID)
}
