package subscription

import (
	middle "pingdeck/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Get("/", h.GetDetails)
	r.Post("/downgrade", h.Downgrade)

	return r
}

// WebhookRoutes are unauthenticated; each handler verifies the provider's
// signature itself.
func WebhookRoutes(stripeH *StripeWebhookHandler, paypalH *PayPalWebhookHandler) chi.Router {
	r := chi.NewRouter()

	r.Post("/stripe", stripeH.Handle)
	r.Post("/paypal", paypalH.Handle)

	return r
}

/*
- GET: /subscription -> plan, status, monitor usage
	req auth : true
	resp : GetDetailsResponse

- POST: /subscription/downgrade -> revert to the FREE plan
	req auth : true

- POST: /webhooks/stripe -> Stripe events (signature verified)
- POST: /webhooks/paypal -> PayPal events (signature verified)
*/
