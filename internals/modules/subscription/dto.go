package subscription

type GetDetailsResponse struct {
	Plan              string `json:"plan"`
	Status            string `json:"status"`
	CurrentMonitors   int32  `json:"current_monitors"`
	MaxMonitors       int32  `json:"max_monitors"`
	MinIntervalSec    int32  `json:"min_interval_sec"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	EndDate           string `json:"end_date,omitempty"`
}
