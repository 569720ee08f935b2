package checker

import (
	"time"

	"pingdeck/internals/modules/monitor"
)

// ProbeResult is the outcome of a single HTTP probe. ResponseTimeMs is
// measured even when the target is down.
type ProbeResult struct {
	Status         monitor.Status
	ResponseTimeMs int64
	CheckedAt      time.Time
}

// CycleState is what persisting a check returns: the most recent check
// statuses (newest first, capped at the monitor's alert threshold) and the
// recomputed uptime over the rolling window.
type CycleState struct {
	Recent []monitor.Status
	Uptime float64
}

// Outcome summarises one monitor's run within a batch, returned to the
// cron caller.
type Outcome struct {
	MonitorID      string  `json:"monitorId"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	ResponseTimeMs int64   `json:"responseTimeMs"`
	UptimePercent  float64 `json:"uptimePercent"`
	Error          string  `json:"error,omitempty"`
}

type RunBatchResponse struct {
	Checked  int       `json:"checked"`
	Outcomes []Outcome `json:"outcomes"`
}
