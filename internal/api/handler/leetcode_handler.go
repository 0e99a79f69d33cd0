package handler

import (
	"net/http"

	"cp_assistant/internal/app/service"
	"cp_assistant/internal/common"

	"github.com/go-chi/chi/v5"
)

type LeetCodeHandler struct {
	dailyService *service.DailyProblemService
}

func NewLeetCodeHandler(ds *service.DailyProblemService) *LeetCodeHandler {
	return &LeetCodeHandler{dailyService: ds}
}

func (h *LeetCodeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily", h.daily) // GET /api/v1/leetcode/daily
}

func (h *LeetCodeHandler) daily(w http.ResponseWriter, r *http.Request) {
	problem, err := h.dailyService.Today(r.Context())
	if err != nil {
		common.RespondWithError(w, err, "")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}
