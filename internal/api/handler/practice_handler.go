package handler

import (
	"net/http"
	"strconv"

	"cp_assistant/internal/app/service"
	"cp_assistant/internal/common"

	"github.com/go-chi/chi/v5"
)

type PracticeHandler struct {
	practiceService *service.PracticeService
}

func NewPracticeHandler(ps *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: ps}
}

func (h *PracticeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{handle}/skill", h.getSkill)
	r.Get("/{handle}/recommendations", h.recommend)
	r.Get("/{handle}/upsolve", h.upsolve)
	r.Get("/{handle}/report", h.buildReport)
}

func (h *PracticeHandler) getSkill(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	skill, skipped, err := h.practiceService.Skill(r.Context(), handle)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"handle":          handle,
		"skill":           skill,
		"skipped_records": skipped,
	})
}

func (h *PracticeHandler) recommend(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	minRating, _ := strconv.Atoi(r.URL.Query().Get("min_rating"))
	maxRating, _ := strconv.Atoi(r.URL.Query().Get("max_rating"))

	result, skill, skipped, err := h.practiceService.Recommend(r.Context(), service.RecommendRequest{
		Handle:    handle,
		Limit:     limit,
		MinRating: minRating,
		MaxRating: maxRating,
	})
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"handle":          handle,
		"skill":           skill,
		"recommendations": result,
		"skipped_records": skipped,
	})
}

func (h *PracticeHandler) upsolve(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	targets, skipped, err := h.practiceService.Upsolve(r.Context(), handle)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"handle":          handle,
		"targets":         targets,
		"skipped_records": skipped,
	})
}

func (h *PracticeHandler) buildReport(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	report, err := h.practiceService.BuildReport(r.Context(), handle, limit)
	if err != nil {
		common.RespondWithError(w, err, handle)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, report)
}
