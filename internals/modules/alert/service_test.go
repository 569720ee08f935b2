package alert

import (
	"context"
	"sync"
	"testing"

	"pingdeck/internals/modules/notification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeAlertStore struct {
	mu      sync.Mutex
	created []Event
}

func (f *fakeAlertStore) Create(ctx context.Context, ev Event) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, ev)
	return uuid.New(), nil
}

func (f *fakeAlertStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	return nil, nil
}

func (f *fakeAlertStore) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	recorded []notification.Notification
}

func (f *fakeNotifier) Record(ctx context.Context, n notification.Notification) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, n)
	return uuid.New(), nil
}

type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []notification.OutboundAlert
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, oa notification.OutboundAlert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, oa)
}

type fakeEmails struct{}

func (fakeEmails) GetEmailByID(ctx context.Context, userID uuid.UUID) (string, error) {
	return "user@example.com", nil
}

func runEvents(t *testing.T, events ...Event) (*fakeAlertStore, *fakeNotifier, *fakeDispatcher) {
	t.Helper()

	store := &fakeAlertStore{}
	notifier := &fakeNotifier{}
	dispatcher := &fakeDispatcher{}
	ch := make(chan Event, len(events))
	logger := zerolog.Nop()

	svc := NewService(store, notifier, dispatcher, fakeEmails{}, ch, 2, &logger)
	svc.Start(context.Background())

	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	svc.Wait()

	return store, notifier, dispatcher
}

func TestEventPersistsAlertAndNotification(t *testing.T) {
	ev := Event{
		MonitorID:   uuid.New(),
		UserID:      uuid.New(),
		MonitorName: "api",
		Type:        TypeDown,
		Message:     "Monitor api is down. 3 consecutive failures.",
	}

	store, notifier, dispatcher := runEvents(t, ev)

	if len(store.created) != 1 {
		t.Fatalf("alerts persisted = %d, want 1", len(store.created))
	}
	if len(notifier.recorded) != 1 {
		t.Fatalf("notifications recorded = %d, want 1", len(notifier.recorded))
	}

	n := notifier.recorded[0]
	if n.Title != "Monitor Alert: api" {
		t.Errorf("notification title = %q", n.Title)
	}
	if n.UserID != ev.UserID || n.MonitorID != ev.MonitorID {
		t.Error("notification carries wrong identity")
	}

	if len(dispatcher.dispatched) != 1 {
		t.Fatalf("dispatches = %d, want 1", len(dispatcher.dispatched))
	}
	oa := dispatcher.dispatched[0]
	if !oa.Critical {
		t.Error("DOWN alert should be critical")
	}
	if oa.UserEmail != "user@example.com" {
		t.Errorf("email = %q, want resolved address", oa.UserEmail)
	}
}

func TestCriticalityFollowsAlertType(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{TypeDown, true},
		{TypeErr, true},
		{TypeUp, false},
		{TypeSlow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			_, _, dispatcher := runEvents(t, Event{
				MonitorID:   uuid.New(),
				UserID:      uuid.New(),
				MonitorName: "api",
				Type:        tt.typ,
				Message:     "msg",
			})

			if len(dispatcher.dispatched) != 1 {
				t.Fatalf("dispatches = %d, want 1", len(dispatcher.dispatched))
			}
			if dispatcher.dispatched[0].Critical != tt.want {
				t.Errorf("critical = %v, want %v", dispatcher.dispatched[0].Critical, tt.want)
			}
		})
	}
}

func TestAllEventsDrainBeforeWaitReturns(t *testing.T) {
	events := make([]Event, 20)
	for i := range events {
		events[i] = Event{
			MonitorID:   uuid.New(),
			UserID:      uuid.New(),
			MonitorName: "api",
			Type:        TypeSlow,
			Message:     "slow",
		}
	}

	store, notifier, dispatcher := runEvents(t, events...)

	if len(store.created) != 20 {
		t.Errorf("alerts persisted = %d, want 20", len(store.created))
	}
	if len(notifier.recorded) != 20 {
		t.Errorf("notifications recorded = %d, want 20", len(notifier.recorded))
	}
	if len(dispatcher.dispatched) != 20 {
		t.Errorf("dispatches = %d, want 20", len(dispatcher.dispatched))
	}
}
