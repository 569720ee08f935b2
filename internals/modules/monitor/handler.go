package monitor

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	var req CreateMonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, err.Error())
		return
	}

	m, err := h.service.Create(ctx, CreateMonitorCmd{
		UserID:         authUser.UserID,
		Name:           req.Name,
		URL:            req.URL,
		IntervalSec:    req.IntervalSec,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, "monitor created", toMonitorResponse(m))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	monitors, err := h.service.ListByUser(ctx, authUser.UserID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := ListMonitorsResponse{Monitors: make([]MonitorResponse, 0, len(monitors))}
	for _, m := range monitors {
		resp.Monitors = append(resp.Monitors, toMonitorResponse(m))
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	monitorID, err := uuid.Parse(chi.URLParam(r, "monitorID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid monitor id")
		return
	}

	m, err := h.service.GetByID(ctx, authUser.UserID, monitorID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", toMonitorResponse(m))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	authUser, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	monitorID, err := uuid.Parse(chi.URLParam(r, "monitorID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid monitor id")
		return
	}

	if err := h.service.Delete(ctx, authUser.UserID, monitorID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "monitor deleted", struct{}{})
}

func toMonitorResponse(m Monitor) MonitorResponse {
	resp := MonitorResponse{
		ID:                 m.ID.String(),
		Name:               m.Name,
		URL:                m.URL,
		IntervalSec:        m.IntervalSec,
		AlertThreshold:     m.AlertThreshold,
		Status:             string(m.Status),
		UptimePercent:      m.UptimePercent,
		LastResponseTimeMs: m.LastResponseTimeMs,
		CreatedAt:          m.CreatedAt,
	}
	if !m.LastChecked.IsZero() {
		lc := m.LastChecked
		resp.LastChecked = &lc
	}
	return resp
}
