package monitor

import "time"

type CreateMonitorRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	URL            string `json:"url" validate:"required,url"`
	IntervalSec    int32  `json:"intervalSec" validate:"required,gte=1"`
	AlertThreshold int32  `json:"alertThreshold" validate:"required,gte=1,lte=10"`
}

type MonitorResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	URL                string     `json:"url"`
	IntervalSec        int32      `json:"intervalSec"`
	AlertThreshold     int32      `json:"alertThreshold"`
	Status             string     `json:"status"`
	UptimePercent      float64    `json:"uptimePercent"`
	LastChecked        *time.Time `json:"lastChecked,omitempty"`
	LastResponseTimeMs *int64     `json:"lastResponseTimeMs,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type ListMonitorsResponse struct {
	Monitors []MonitorResponse `json:"monitors"`
}
