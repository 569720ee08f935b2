package notification

import "time"

type NotificationResponse struct {
	ID        string    `json:"id"`
	MonitorID string    `json:"monitorId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}
