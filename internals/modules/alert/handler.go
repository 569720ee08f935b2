package alert

import (
	"net/http"

	middle "pingdeck/internals/middleware"
	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	alerts, err := h.service.ListByUser(ctx, authUser.UserID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := ListAlertsResponse{Alerts: make([]AlertResponse, 0, len(alerts))}
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, AlertResponse{
			ID:        a.ID.String(),
			MonitorID: a.MonitorID.String(),
			Type:      string(a.Type),
			Message:   a.Message,
			Read:      a.Read,
			CreatedAt: a.CreatedAt,
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

	alertID, err := uuid.Parse(chi.URLParam(r, "alertID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid alert id")
		return
	}

	if err := h.service.MarkRead(ctx, authUser.UserID, alertID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "alert marked as read", struct{}{})
}
