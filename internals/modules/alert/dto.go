package alert

import "time"

type AlertResponse struct {
	ID        string    `json:"id"`
	MonitorID string    `json:"monitorId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListAlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}
