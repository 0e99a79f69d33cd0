package api

import (
	"net/http"
	"time"

	"cp_assistant/internal/api/handler"
	"cp_assistant/internal/api/middleware"
	"cp_assistant/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	authToken string,
	profileService *service.ProfileService,
	practiceService *service.PracticeService,
	contestService *service.ContestService,
	dailyService *service.DailyProblemService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.BearerAuth(authToken))

		v1.Route("/users", func(users chi.Router) {
			profileHandler := handler.NewProfileHandler(profileService)
			profileHandler.RegisterRoutes(users)

			practiceHandler := handler.NewPracticeHandler(practiceService)
			practiceHandler.RegisterRoutes(users)
		})

		contestHandler := handler.NewContestHandler(contestService)
		v1.Route("/contests", contestHandler.RegisterRoutes)

		leetcodeHandler := handler.NewLeetCodeHandler(dailyService)
		v1.Route("/leetcode", leetcodeHandler.RegisterRoutes)
	})

	return r
}
