package app

import (
	"net/http"
	"time"

	middle "pingdeck/internals/middleware"
	"pingdeck/internals/modules/alert"
	"pingdeck/internals/modules/checker"
	"pingdeck/internals/modules/monitor"
	"pingdeck/internals/modules/notification"
	"pingdeck/internals/modules/subscription"
	"pingdeck/internals/modules/user"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		utils.WriteJSON(w, http.StatusOK, middleware.GetReqID(req.Context()), "ok", struct{}{})
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(15 * time.Second))

			g.Mount("/users", user.Routes(c.UserHandler, c.AuthMW))
			g.Mount("/monitors", monitor.Routes(c.MonitorHandler, c.AuthMW))
			g.Mount("/subscription", subscription.Routes(c.SubscriptionHandler, c.AuthMW))
			g.Mount("/webhooks", subscription.WebhookRoutes(c.StripeWebhookHandler, c.PayPalWebhookHandler))
			g.Mount("/notifications", notification.Routes(c.NotificationHandler, c.AuthMW))
			g.Mount("/alerts", alert.Routes(c.AlertHandler, c.AuthMW))
		})

		// a batch of slow probes can outlive the request timeout, so the
		// cron route stays outside the timeout group
		api.Mount("/cron", checker.Routes(c.CheckerHandler, c.Cfg.Cron.Secret))
	})

	return r
}
