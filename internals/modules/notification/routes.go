package notification

import (
	middle "pingdeck/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Get("/", h.List)
	r.Post("/{notificationID}/read", h.MarkRead)
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.UpdatePreferences)

	return r
}

/*
- GET: /notifications -> latest 50 notifications for caller
	req auth : true
	resp : ListNotificationsResponse

- POST: /notifications/{notificationID}/read -> mark one as read
	req auth : true

- GET: /notifications/preferences -> channel preferences
	req auth : true

- PUT: /notifications/preferences -> replace channel preferences
	req auth : true
	body : PreferencesRequest
*/
