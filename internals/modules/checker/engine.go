package checker

import (
	"fmt"

	"pingdeck/internals/modules/alert"
	"pingdeck/internals/modules/monitor"
)

// Uptime is the share of UP checks in the rolling window. A monitor with
// no checks yet reports 100.
func Uptime(statuses []monitor.Status) float64 {
	if len(statuses) == 0 {
		return 100
	}

	up := 0
	for _, s := range statuses {
		if s == monitor.StatusUp {
			up++
		}
	}

	return float64(up) / float64(len(statuses)) * 100
}

// ConsecutiveDown counts the leading run of DOWN statuses. The slice is
// newest first, so the count resets at the first non-DOWN check.
func ConsecutiveDown(statuses []monitor.Status) int {
	n := 0
	for _, s := range statuses {
		if s != monitor.StatusDown {
			break
		}
		n++
	}
	return n
}

type Decision struct {
	Type    alert.Type
	Message string
}

// Decide picks at most one alert for a completed check. Being down at the
// failure threshold wins over everything, recovery over slowness, and any
// remaining check that breached the latency threshold signals
// SLOW_RESPONSE, whatever its status. recent must include the new check at
// index 0; m carries the status stored before this cycle, which is what
// makes recovery edge-triggered.
func Decide(m monitor.Monitor, recent []monitor.Status, res ProbeResult, slowThresholdMs int64) *Decision {
	fails := ConsecutiveDown(recent)

	switch {
	case res.Status == monitor.StatusDown && fails >= int(m.AlertThreshold):
		return &Decision{
			Type:    alert.TypeDown,
			Message: fmt.Sprintf("Monitor %s is down. %d consecutive failures.", m.Name, fails),
		}
	case res.Status == monitor.StatusUp && m.Status == monitor.StatusDown:
		return &Decision{
			Type:    alert.TypeUp,
			Message: fmt.Sprintf("Monitor %s is back up.", m.Name),
		}
	case res.ResponseTimeMs > slowThresholdMs:
		return &Decision{
			Type:    alert.TypeSlow,
			Message: fmt.Sprintf("Monitor %s responded in %dms, above the %dms threshold.", m.Name, res.ResponseTimeMs, slowThresholdMs),
		}
	}

	return nil
}
