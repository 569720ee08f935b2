package notification

import (
	"encoding/json"
	"net/http"

	middle "pingdeck/internals/middleware"
	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	notifications, err := h.service.ListByUser(ctx, authUser.UserID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := ListNotificationsResponse{Notifications: make([]NotificationResponse, 0, len(notifications))}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        n.ID.String(),
			MonitorID: n.MonitorID.String(),
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	notificationID, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid notification id")
		return
	}

	if err := h.service.MarkRead(ctx, authUser.UserID, notificationID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "notification marked as read", struct{}{})
}

type PreferencesRequest struct {
	Email         bool   `json:"email"`
	SMS           bool   `json:"sms"`
	Slack         bool   `json:"slack"`
	Webhook       bool   `json:"webhook"`
	PhoneNumber   string `json:"phoneNumber" validate:"omitempty,e164"`
	SlackWebhook  string `json:"slackWebhook" validate:"omitempty,url"`
	CustomWebhook string `json:"customWebhook" validate:"omitempty,url"`
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	prefs, err := h.service.GetPreferences(ctx, authUser.UserID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", PreferencesRequest{
		Email:         prefs.Email,
		SMS:           prefs.SMS,
		Slack:         prefs.Slack,
		Webhook:       prefs.Webhook,
		PhoneNumber:   prefs.PhoneNumber,
		SlackWebhook:  prefs.SlackWebhook,
		CustomWebhook: prefs.CustomWebhook,
	})
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	err := h.service.UpdatePreferences(ctx, Preferences{
		UserID:        authUser.UserID,
		Email:         req.Email,
		SMS:           req.SMS,
		Slack:         req.Slack,
		Webhook:       req.Webhook,
		PhoneNumber:   req.PhoneNumber,
		SlackWebhook:  req.SlackWebhook,
		CustomWebhook: req.CustomWebhook,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "preferences updated", struct{}{})
}
