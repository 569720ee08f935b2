package monitor

import (
	"context"
	"testing"
	"time"

	"pingdeck/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeStore struct {
	monitors map[uuid.UUID]Monitor
	byURL    map[string]bool
	getCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		monitors: make(map[uuid.UUID]Monitor),
		byURL:    make(map[string]bool),
	}
}

func (f *fakeStore) Create(ctx context.Context, cmd CreateMonitorCmd) (Monitor, error) {
	m := Monitor{
		ID:             uuid.New(),
		UserID:         cmd.UserID,
		Name:           cmd.Name,
		URL:            cmd.URL,
		IntervalSec:    cmd.IntervalSec,
		AlertThreshold: cmd.AlertThreshold,
		Status:         StatusPending,
		UptimePercent:  100,
		CreatedAt:      time.Now(),
	}
	f.monitors[m.ID] = m
	f.byURL[cmd.URL] = true
	return m, nil
}

func (f *fakeStore) GetByID(ctx context.Context, monitorID uuid.UUID) (Monitor, error) {
	f.getCalls++
	m, ok := f.monitors[monitorID]
	if !ok {
		return Monitor{}, &apperror.Error{Kind: apperror.NotFound, Op: "fake"}
	}
	return m, nil
}

func (f *fakeStore) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Monitor, error) {
	out := make([]Monitor, 0)
	for _, m := range f.monitors {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) ExistsByUserAndURL(ctx context.Context, userID uuid.UUID, url string) (bool, error) {
	return f.byURL[url], nil
}

func (f *fakeStore) Delete(ctx context.Context, userID, monitorID uuid.UUID) (bool, error) {
	m, ok := f.monitors[monitorID]
	if !ok || m.UserID != userID {
		return false, nil
	}
	delete(f.monitors, monitorID)
	delete(f.byURL, m.URL)
	return true, nil
}

type fakeGate struct {
	err error
}

func (f *fakeGate) CheckMonitorAllowance(ctx context.Context, userID uuid.UUID, intervalSec int32) error {
	return f.err
}

type fakeCache struct {
	set      int
	deleted  int
	status   map[string]string
	monitors map[uuid.UUID]Monitor
}

func (f *fakeCache) SetMonitor(ctx context.Context, m Monitor) error {
	f.set++
	if f.monitors == nil {
		f.monitors = make(map[uuid.UUID]Monitor)
	}
	f.monitors[m.ID] = m
	return nil
}

func (f *fakeCache) GetMonitor(ctx context.Context, monitorID uuid.UUID) (Monitor, bool) {
	m, ok := f.monitors[monitorID]
	return m, ok
}

func (f *fakeCache) DelMonitor(ctx context.Context, monitorID uuid.UUID) error {
	f.deleted++
	return nil
}

func (f *fakeCache) GetStatus(ctx context.Context, monitorID uuid.UUID) (map[string]string, error) {
	return f.status, nil
}

func (f *fakeCache) DelStatus(ctx context.Context, monitorID uuid.UUID) error {
	f.deleted++
	return nil
}

func newTestService(store Store, gate SubscriptionGate, cache Cache) *Service {
	logger := zerolog.Nop()
	return NewService(store, gate, cache, &logger)
}

func TestCreateMonitor(t *testing.T) {
	userID := uuid.New()
	cmd := CreateMonitorCmd{
		UserID:         userID,
		Name:           "api",
		URL:            "https://api.example.com/health",
		IntervalSec:    300,
		AlertThreshold: 3,
	}

	t.Run("happy path caches the monitor", func(t *testing.T) {
		cache := &fakeCache{}
		svc := newTestService(newFakeStore(), &fakeGate{}, cache)

		m, err := svc.Create(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if m.Status != StatusPending {
			t.Errorf("status = %s, want PENDING", m.Status)
		}
		if m.UptimePercent != 100 {
			t.Errorf("uptime = %v, want 100", m.UptimePercent)
		}
		if cache.set != 1 {
			t.Errorf("cache writes = %d, want 1", cache.set)
		}
	})

	t.Run("plan gate rejection propagates", func(t *testing.T) {
		gate := &fakeGate{err: &apperror.Error{Kind: apperror.QuotaExceeded, Op: "gate"}}
		svc := newTestService(newFakeStore(), gate, &fakeCache{})

		_, err := svc.Create(context.Background(), cmd)
		if !apperror.IsKind(err, apperror.QuotaExceeded) {
			t.Fatalf("error = %v, want QuotaExceeded", err)
		}
	})

	t.Run("duplicate url is a conflict", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, &fakeGate{}, &fakeCache{})

		if _, err := svc.Create(context.Background(), cmd); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := svc.Create(context.Background(), cmd)
		if !apperror.IsKind(err, apperror.Conflict) {
			t.Fatalf("error = %v, want Conflict", err)
		}
	})
}

func TestGetByIDReadsThroughCache(t *testing.T) {
	store := newFakeStore()
	cache := &fakeCache{}
	svc := newTestService(store, &fakeGate{}, cache)

	owner := uuid.New()
	m, err := svc.Create(context.Background(), CreateMonitorCmd{
		UserID: owner, Name: "api", URL: "https://a.test", IntervalSec: 300, AlertThreshold: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("cache hit skips postgres", func(t *testing.T) {
		if _, err := svc.GetByID(context.Background(), owner, m.ID); err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if store.getCalls != 0 {
			t.Errorf("store reads = %d, want 0 when the monitor is cached", store.getCalls)
		}
	})

	t.Run("cache miss falls back and repopulates", func(t *testing.T) {
		delete(cache.monitors, m.ID)
		setsBefore := cache.set

		got, err := svc.GetByID(context.Background(), owner, m.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ID != m.ID {
			t.Errorf("got monitor %s, want %s", got.ID, m.ID)
		}
		if store.getCalls != 1 {
			t.Errorf("store reads = %d, want 1 on cache miss", store.getCalls)
		}
		if cache.set != setsBefore+1 {
			t.Errorf("cache writes = %d, want %d (miss repopulates)", cache.set, setsBefore+1)
		}
	})
}

func TestGetByIDHidesOtherUsersMonitors(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGate{}, &fakeCache{})

	owner := uuid.New()
	m, err := svc.Create(context.Background(), CreateMonitorCmd{
		UserID: owner, Name: "api", URL: "https://a.test", IntervalSec: 300, AlertThreshold: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), owner, m.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}

	_, err = svc.GetByID(context.Background(), uuid.New(), m.ID)
	if !apperror.IsKind(err, apperror.NotFound) {
		t.Errorf("error = %v, want NotFound for foreign user", err)
	}
}

func TestLiveStatusOverlaysStoredState(t *testing.T) {
	store := newFakeStore()
	cache := &fakeCache{status: map[string]string{
		"status":           "DOWN",
		"response_time_ms": "850",
		"checked_at":       "1788091200",
	}}
	svc := newTestService(store, &fakeGate{}, cache)

	owner := uuid.New()
	created, err := svc.Create(context.Background(), CreateMonitorCmd{
		UserID: owner, Name: "api", URL: "https://a.test", IntervalSec: 300, AlertThreshold: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	m, err := svc.GetByID(context.Background(), owner, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if m.Status != StatusDown {
		t.Errorf("status = %s, want DOWN from live cache", m.Status)
	}
	if m.LastResponseTimeMs == nil || *m.LastResponseTimeMs != 850 {
		t.Errorf("response time = %v, want 850", m.LastResponseTimeMs)
	}
	if m.LastChecked.IsZero() {
		t.Error("LastChecked not overlaid from live cache")
	}
}

func TestDeleteEvictsCache(t *testing.T) {
	store := newFakeStore()
	cache := &fakeCache{}
	svc := newTestService(store, &fakeGate{}, cache)

	owner := uuid.New()
	m, err := svc.Create(context.Background(), CreateMonitorCmd{
		UserID: owner, Name: "api", URL: "https://a.test", IntervalSec: 300, AlertThreshold: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), owner, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if cache.deleted != 2 {
		t.Errorf("cache evictions = %d, want 2 (monitor and status keys)", cache.deleted)
	}

	err = svc.Delete(context.Background(), owner, m.ID)
	if !apperror.IsKind(err, apperror.NotFound) {
		t.Errorf("second delete = %v, want NotFound", err)
	}
}
