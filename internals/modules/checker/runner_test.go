package checker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pingdeck/internals/modules/alert"
	"pingdeck/internals/modules/monitor"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeStore struct {
	mu       sync.Mutex
	monitors []monitor.Monitor
	failFor  map[uuid.UUID]error
	saved    []uuid.UUID
	state    CycleState
}

func (f *fakeStore) DueMonitors(ctx context.Context) ([]monitor.Monitor, error) {
	return f.monitors, nil
}

func (f *fakeStore) SaveCycle(ctx context.Context, m monitor.Monitor, res ProbeResult) (CycleState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[m.ID]; ok {
		return CycleState{}, err
	}
	f.saved = append(f.saved, m.ID)
	return f.state, nil
}

type fakeProber struct {
	result ProbeResult
}

func (f *fakeProber) Probe(ctx context.Context, url string) ProbeResult {
	return f.result
}

type fakeStatusCache struct {
	mu     sync.Mutex
	stored []uuid.UUID
}

func (f *fakeStatusCache) StoreStatus(ctx context.Context, monitorID uuid.UUID, status string, responseTimeMs int64, checkedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, monitorID)
	return nil
}

func testMonitor(name string) monitor.Monitor {
	return monitor.Monitor{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Name:           name,
		URL:            "http://" + name + ".test",
		IntervalSec:    300,
		AlertThreshold: 3,
		Status:         monitor.StatusUp,
	}
}

func TestRunBatchProcessesAllMonitors(t *testing.T) {
	store := &fakeStore{
		monitors: []monitor.Monitor{testMonitor("a"), testMonitor("b"), testMonitor("c")},
		state:    CycleState{Recent: []monitor.Status{monitor.StatusUp}, Uptime: 100},
	}
	prober := &fakeProber{result: ProbeResult{Status: monitor.StatusUp, ResponseTimeMs: 42, CheckedAt: time.Now()}}
	cache := &fakeStatusCache{}
	events := make(chan alert.Event, 10)
	logger := zerolog.Nop()

	r := NewRunner(store, prober, cache, events, 2, 5000, &logger)

	outcomes, err := r.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Error != "" {
			t.Errorf("monitor %s unexpectedly failed: %s", o.Name, o.Error)
		}
		if o.Status != "UP" {
			t.Errorf("monitor %s status = %s, want UP", o.Name, o.Status)
		}
	}
	if len(store.saved) != 3 {
		t.Errorf("saved %d cycles, want 3", len(store.saved))
	}
	if len(cache.stored) != 3 {
		t.Errorf("stored %d live statuses, want 3", len(cache.stored))
	}
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	bad := testMonitor("bad")
	good := testMonitor("good")

	store := &fakeStore{
		monitors: []monitor.Monitor{bad, good},
		failFor:  map[uuid.UUID]error{bad.ID: errors.New("tx deadlock")},
		state:    CycleState{Recent: []monitor.Status{monitor.StatusUp}, Uptime: 100},
	}
	prober := &fakeProber{result: ProbeResult{Status: monitor.StatusUp, ResponseTimeMs: 42, CheckedAt: time.Now()}}
	events := make(chan alert.Event, 10)
	logger := zerolog.Nop()

	r := NewRunner(store, prober, &fakeStatusCache{}, events, 4, 5000, &logger)

	outcomes, err := r.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	var failed, ok int
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		} else {
			ok++
		}
	}
	if failed != 1 || ok != 1 {
		t.Fatalf("failed=%d ok=%d, want 1 and 1", failed, ok)
	}

	// the failed monitor must surface as an ERROR event
	close(events)
	var errEvents int
	for ev := range events {
		if ev.Type == alert.TypeErr && ev.MonitorID == bad.ID {
			errEvents++
		}
	}
	if errEvents != 1 {
		t.Errorf("got %d ERROR events for the failed monitor, want 1", errEvents)
	}
}

func TestRunBatchEmitsDecidedAlerts(t *testing.T) {
	m := testMonitor("flaky")

	store := &fakeStore{
		monitors: []monitor.Monitor{m},
		state: CycleState{
			Recent: []monitor.Status{monitor.StatusDown, monitor.StatusDown, monitor.StatusDown},
			Uptime: 40,
		},
	}
	prober := &fakeProber{result: ProbeResult{Status: monitor.StatusDown, ResponseTimeMs: 87, CheckedAt: time.Now()}}
	events := make(chan alert.Event, 10)
	logger := zerolog.Nop()

	r := NewRunner(store, prober, &fakeStatusCache{}, events, 1, 5000, &logger)

	if _, err := r.RunBatch(context.Background()); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Type != alert.TypeDown {
			t.Errorf("event type = %s, want DOWN", ev.Type)
		}
		if ev.UserID != m.UserID || ev.MonitorID != m.ID {
			t.Error("event carries wrong monitor identity")
		}
	default:
		t.Fatal("no alert event emitted")
	}
}
