package checker

import (
	"context"
	"io"
	"net/http"
	"time"

	"pingdeck/internals/modules/monitor"
)

// Prober issues a single GET against the monitored URL. Any 2xx response
// counts as UP. Network errors, timeouts and non-2xx statuses are DOWN.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

func NewProber(client *http.Client, timeout time.Duration) *Prober {
	return &Prober{
		client:  client,
		timeout: timeout,
	}
}

func (p *Prober) Probe(ctx context.Context, url string) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	status := monitor.StatusDown

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ProbeResult{
			Status:         status,
			ResponseTimeMs: time.Since(start).Milliseconds(),
			CheckedAt:      time.Now().UTC(),
		}
	}
	req.Header.Set("User-Agent", "pingdeck-checker/1.0")

	resp, err := p.client.Do(req)
	elapsed := time.Since(start).Milliseconds()

	if err == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			status = monitor.StatusUp
		}
	}

	return ProbeResult{
		Status:         status,
		ResponseTimeMs: elapsed,
		CheckedAt:      time.Now().UTC(),
	}
}
