package subscription

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

type StripeWebhookHandler struct {
	service       *Service
	webhookSecret string
	logger        *zerolog.Logger
}

func NewStripeWebhookHandler(service *Service, webhookSecret string, logger *zerolog.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		service:       service,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *StripeWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "unreadable payload")
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.Unauthorised, "webhook signature verification failed")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "malformed checkout session")
			return
		}
		err = h.applyCheckoutCompleted(r, &session)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "malformed subscription")
			return
		}
		err = h.service.ApplyStripeSubscriptionDeleted(ctx, sub.ID, time.Unix(sub.EndedAt, 0))

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "malformed invoice")
			return
		}
		if invoice.Subscription != nil {
			err = h.service.ApplyStripePaymentFailed(ctx, invoice.Subscription.ID)
		}

	default:
		// ignore event types we do not subscribe to
	}

	if err != nil {
		h.logger.Error().Err(err).Str("event_type", string(event.Type)).Msg("stripe webhook processing failed")
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON[any](w, http.StatusOK, reqID, "received", nil)
}

func (h *StripeWebhookHandler) applyCheckoutCompleted(r *http.Request, session *stripe.CheckoutSession) error {
	const op string = "handler.subscription.stripe_checkout_completed"

	userID, err := uuid.Parse(session.Metadata["user_id"])
	if err != nil {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: "checkout session missing user metadata",
		}
	}

	var customerID, subscriptionID string
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	payment := Payment{
		UserID:   userID,
		Amount:   session.AmountTotal,
		Currency: string(session.Currency),
		Status:   "SUCCEEDED",
	}
	if session.PaymentIntent != nil {
		payment.StripePaymentID = session.PaymentIntent.ID
	}

	return h.service.ApplyCheckoutCompleted(
		r.Context(),
		userID,
		Plan(session.Metadata["plan"]),
		customerID,
		subscriptionID,
		session.Metadata["price_id"],
		payment,
	)
}
