package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"pingdeck/config"
	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type PayPalWebhookHandler struct {
	service *Service
	cfg     *config.PayPalConfig
	client  *http.Client
	logger  *zerolog.Logger
}

func NewPayPalWebhookHandler(service *Service, cfg *config.PayPalConfig, client *http.Client, logger *zerolog.Logger) *PayPalWebhookHandler {
	return &PayPalWebhookHandler{
		service: service,
		cfg:     cfg,
		client:  client,
		logger:  logger,
	}
}

type paypalEvent struct {
	ResourceType string `json:"resource_type"`
	EventType    string `json:"event_type"`
	Resource     struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"resource"`
}

func (h *PayPalWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "malformed webhook body")
		return
	}

	ok, err := h.verifySignature(ctx, raw, r.Header)
	if err != nil || !ok {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.Unauthorised, "invalid webhook signature")
		return
	}

	var event paypalEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "malformed webhook event")
		return
	}

	if event.ResourceType != "subscription" {
		utils.WriteJSON[any](w, http.StatusOK, reqID, "processed", nil)
		return
	}

	if err := h.service.ApplyPayPalEvent(ctx, event.Resource.ID, event.EventType); err != nil {
		h.logger.Error().Err(err).Str("event_type", event.EventType).Msg("paypal webhook processing failed")
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON[any](w, http.StatusOK, reqID, "processed", nil)
}

// verifySignature asks PayPal to confirm the transmission headers match the
// event body. There is no local signature scheme; verification is one API
// round trip.
func (h *PayPalWebhookHandler) verifySignature(ctx context.Context, event json.RawMessage, headers http.Header) (bool, error) {
	body, err := json.Marshal(map[string]any{
		"webhook_id":        h.cfg.WebhookID,
		"webhook_event":     event,
		"transmission_id":   headers.Get("paypal-transmission-id"),
		"transmission_time": headers.Get("paypal-transmission-time"),
		"cert_url":          headers.Get("paypal-cert-url"),
		"auth_algo":         headers.Get("paypal-auth-algo"),
		"transmission_sig":  headers.Get("paypal-transmission-sig"),
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.cfg.APIURL+"/v1/notifications/verify-webhook-signature",
		bytes.NewReader(body),
	)
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.cfg.AccessToken)

	resp, err := h.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var verification struct {
		VerificationStatus string `json:"verification_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return false, err
	}

	return verification.VerificationStatus == "SUCCESS", nil
}
