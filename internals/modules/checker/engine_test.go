package checker

import (
	"testing"
	"time"

	"pingdeck/internals/modules/alert"
	"pingdeck/internals/modules/monitor"
)

func TestUptime(t *testing.T) {
	tests := []struct {
		name     string
		statuses []monitor.Status
		want     float64
	}{
		{"no checks yet", nil, 100},
		{"all up", []monitor.Status{monitor.StatusUp, monitor.StatusUp}, 100},
		{"all down", []monitor.Status{monitor.StatusDown, monitor.StatusDown}, 0},
		{"half up", []monitor.Status{monitor.StatusUp, monitor.StatusDown}, 50},
		{"three of four", []monitor.Status{monitor.StatusUp, monitor.StatusUp, monitor.StatusUp, monitor.StatusDown}, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Uptime(tt.statuses); got != tt.want {
				t.Errorf("Uptime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConsecutiveDown(t *testing.T) {
	tests := []struct {
		name     string
		statuses []monitor.Status
		want     int
	}{
		{"empty", nil, 0},
		{"up first", []monitor.Status{monitor.StatusUp, monitor.StatusDown}, 0},
		{"two leading", []monitor.Status{monitor.StatusDown, monitor.StatusDown, monitor.StatusUp, monitor.StatusDown}, 2},
		{"all down", []monitor.Status{monitor.StatusDown, monitor.StatusDown, monitor.StatusDown}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConsecutiveDown(tt.statuses); got != tt.want {
				t.Errorf("ConsecutiveDown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	const slowMs = 5000

	m := monitor.Monitor{
		Name:           "api",
		AlertThreshold: 3,
		Status:         monitor.StatusUp,
	}

	down := func(ms int64) ProbeResult {
		return ProbeResult{Status: monitor.StatusDown, ResponseTimeMs: ms, CheckedAt: time.Now()}
	}
	up := func(ms int64) ProbeResult {
		return ProbeResult{Status: monitor.StatusUp, ResponseTimeMs: ms, CheckedAt: time.Now()}
	}

	t.Run("down at threshold fires", func(t *testing.T) {
		recent := []monitor.Status{monitor.StatusDown, monitor.StatusDown, monitor.StatusDown}
		d := Decide(m, recent, down(120), slowMs)
		if d == nil || d.Type != alert.TypeDown {
			t.Fatalf("want DOWN decision, got %+v", d)
		}
	})

	t.Run("down below threshold stays quiet", func(t *testing.T) {
		recent := []monitor.Status{monitor.StatusDown, monitor.StatusDown, monitor.StatusUp}
		if d := Decide(m, recent, down(120), slowMs); d != nil {
			t.Fatalf("want no decision, got %+v", d)
		}
	})

	t.Run("recovery fires only from stored DOWN", func(t *testing.T) {
		wasDown := m
		wasDown.Status = monitor.StatusDown

		recent := []monitor.Status{monitor.StatusUp, monitor.StatusDown, monitor.StatusDown}
		d := Decide(wasDown, recent, up(120), slowMs)
		if d == nil || d.Type != alert.TypeUp {
			t.Fatalf("want UP decision, got %+v", d)
		}

		// same probe against a monitor that was already UP
		if d := Decide(m, recent, up(120), slowMs); d != nil {
			t.Fatalf("want no decision for UP->UP, got %+v", d)
		}
	})

	t.Run("slow response fires above threshold", func(t *testing.T) {
		recent := []monitor.Status{monitor.StatusUp, monitor.StatusUp}
		d := Decide(m, recent, up(6000), slowMs)
		if d == nil || d.Type != alert.TypeSlow {
			t.Fatalf("want SLOW_RESPONSE decision, got %+v", d)
		}

		if d := Decide(m, recent, up(5000), slowMs); d != nil {
			t.Fatalf("want no decision at exactly the threshold, got %+v", d)
		}
	})

	t.Run("slow down check below threshold fires slow", func(t *testing.T) {
		recent := []monitor.Status{monitor.StatusDown, monitor.StatusUp, monitor.StatusUp}
		d := Decide(m, recent, down(6000), slowMs)
		if d == nil || d.Type != alert.TypeSlow {
			t.Fatalf("want SLOW_RESPONSE for a slow failing check under the failure threshold, got %+v", d)
		}
	})

	t.Run("down at threshold beats slowness", func(t *testing.T) {
		recent := []monitor.Status{monitor.StatusDown, monitor.StatusDown, monitor.StatusDown}
		d := Decide(m, recent, down(9000), slowMs)
		if d == nil || d.Type != alert.TypeDown {
			t.Fatalf("want DOWN to win over SLOW_RESPONSE, got %+v", d)
		}
	})

	t.Run("recovery beats slowness", func(t *testing.T) {
		wasDown := m
		wasDown.Status = monitor.StatusDown

		recent := []monitor.Status{monitor.StatusUp, monitor.StatusDown}
		d := Decide(wasDown, recent, up(9000), slowMs)
		if d == nil || d.Type != alert.TypeUp {
			t.Fatalf("want UP to win over SLOW_RESPONSE, got %+v", d)
		}
	})

	t.Run("pending monitor never signals recovery", func(t *testing.T) {
		fresh := m
		fresh.Status = monitor.StatusPending

		recent := []monitor.Status{monitor.StatusUp}
		if d := Decide(fresh, recent, up(120), slowMs); d != nil {
			t.Fatalf("want no decision for first check, got %+v", d)
		}
	})
}
