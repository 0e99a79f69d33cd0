package handler

import (
	"net/http"
	"strconv"
	"strings"

	"cp_assistant/internal/app/service"
	"cp_assistant/internal/common"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(cs *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: cs}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/upcoming", h.upcoming) // GET /api/v1/contests/upcoming?platforms=codeforces,leetcode
}

func (h *ContestHandler) upcoming(w http.ResponseWriter, r *http.Request) {
	platformsStr := r.URL.Query().Get("platforms")

	var platforms []string
	if platformsStr != "" {
		for _, p := range strings.Split(platformsStr, ",") {
			if p = strings.TrimSpace(p); p != "" {
				platforms = append(platforms, p)
			}
		}
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	contests, err := h.contestService.Upcoming(r.Context(), platforms, limit)
	if err != nil {
		common.RespondWithError(w, err, platformsStr)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"contests": contests})
}
