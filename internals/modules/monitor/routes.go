package monitor

import (
	middle "pingdeck/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{monitorID}", h.Get)
	r.Delete("/{monitorID}", h.Delete)

	return r
}

/*
- POST: /monitors -> create monitor (plan ceiling and interval enforced)
	req auth : true
	body : CreateMonitorRequest
	resp : MonitorResponse

- GET: /monitors -> list caller's monitors with live status
	req auth : true
	resp : ListMonitorsResponse

- GET: /monitors/{monitorID} -> get one monitor with live status
	req auth : true
	resp : MonitorResponse

- DELETE: /monitors/{monitorID} -> delete monitor and its history
	req auth : true
*/
