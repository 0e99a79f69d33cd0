package handler

import (
	"net/http"
	"strconv"
	"strings"

	"cp_assistant/internal/app/service"
	"cp_assistant/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(ps *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/compare", h.compareUsers) // GET /api/v1/users/compare?handles=a,b
	r.Get("/{handle}/stats", h.getStats)
	r.Get("/{handle}/solved", h.recentSolved)
	r.Get("/{handle}/rating-history", h.ratingHistory)
	r.Get("/{handle}/distributions", h.distributions)
}

func (h *ProfileHandler) getStats(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	stats, err := h.profileService.GetStats(r.Context(), handle)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *ProfileHandler) compareUsers(w http.ResponseWriter, r *http.Request) {
	handlesStr := r.URL.Query().Get("handles")

	var handles []string
	for _, h := range strings.Split(handlesStr, ",") {
		if h = strings.TrimSpace(h); h != "" {
			handles = append(handles, h)
		}
	}

	stats, err := h.profileService.CompareUsers(r.Context(), handles)
	if err != nil {
		common.RespondWithError(w, err, handlesStr)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"users": stats})
}

func (h *ProfileHandler) recentSolved(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	solved, err := h.profileService.RecentSolved(r.Context(), handle, limit)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"handle": handle,
		"solved": solved,
	})
}

func (h *ProfileHandler) ratingHistory(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	points, err := h.profileService.RatingHistory(r.Context(), handle)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"handle": handle,
		"points": points,
	})
}

func (h *ProfileHandler) distributions(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	bucketWidth, _ := strconv.Atoi(r.URL.Query().Get("bucket_width"))

	reports, skipped, err := h.profileService.Distributions(r.Context(), handle, bucketWidth)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"handle":          handle,
		"distributions":   reports,
		"skipped_records": skipped,
	})
}
