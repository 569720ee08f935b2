package checker

import (
	middle "pingdeck/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, cronSecret string) chi.Router {
	r := chi.NewRouter()
	r.Use(middle.CronSecret(cronSecret))

	r.Get("/run", h.Run)

	return r
}

/*
- GET: /cron/run -> run one check batch over all due monitors
	req auth : x-cron-secret header
	resp : RunBatchResponse
*/
