package monitor

import (
	"context"

	"github.com/google/uuid"
)

// Cache holds hot monitor state in redis so list/get calls can serve the
// latest probe result without touching postgres.
type Cache interface {
	SetMonitor(ctx context.Context, m Monitor) error
	GetMonitor(ctx context.Context, monitorID uuid.UUID) (Monitor, bool)
	DelMonitor(ctx context.Context, monitorID uuid.UUID) error
	GetStatus(ctx context.Context, monitorID uuid.UUID) (map[string]string, error)
	DelStatus(ctx context.Context, monitorID uuid.UUID) error
}
