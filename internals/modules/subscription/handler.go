package subscription

import (
	"net/http"
	"time"

	middle "pingdeck/internals/middleware"
	"pingdeck/pkg/apperror"
	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	user, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	details, err := h.service.GetDetails(ctx, user.UserID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := GetDetailsResponse{
		Plan:              string(details.Plan),
		Status:            string(details.Status),
		CurrentMonitors:   details.CurrentMonitors,
		MaxMonitors:       details.MaxMonitors,
		MinIntervalSec:    details.MinIntervalSec,
		CancelAtPeriodEnd: details.CancelAtPeriodEnd,
	}
	if !details.EndDate.IsZero() {
		resp.EndDate = details.EndDate.Format(time.RFC3339)
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "", resp)
}

func (h *Handler) Downgrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	user, ok := middle.UserFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "")
		return
	}

	if err := h.service.DowngradeToFree(ctx, user.UserID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON[any](w, http.StatusOK, reqID, "subscription downgraded to free", nil)
}
