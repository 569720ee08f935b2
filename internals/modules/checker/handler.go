package checker

import (
	"net/http"

	"pingdeck/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	runner *Runner
}

func NewHandler(runner *Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	outcomes, err := h.runner.RunBatch(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "batch complete", RunBatchResponse{
		Checked:  len(outcomes),
		Outcomes: outcomes,
	})
}
