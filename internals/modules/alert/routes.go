package alert

import (
	middle "pingdeck/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Get("/", h.List)
	r.Post("/{alertID}/read", h.MarkRead)

	return r
}

/*
- GET: /alerts -> latest 50 alerts for caller
	req auth : true
	resp : ListAlertsResponse

- POST: /alerts/{alertID}/read -> mark one as read
	req auth : true
*/
