package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cp_assistant/internal/api"
	"cp_assistant/internal/app/engine"
	"cp_assistant/internal/app/service"
	"cp_assistant/internal/domain/model"
	"cp_assistant/internal/platform/cache"
	"cp_assistant/internal/platform/clist"
	"cp_assistant/internal/platform/codeforces"
	"cp_assistant/internal/platform/config"
	"cp_assistant/internal/platform/leetcode"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Redis (optional cache backend)
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 3. Initialize Platform Clients
	cfClient := codeforces.NewClient(config.AppConfig.CodeforcesBaseURL)
	clistClient := clist.NewClient(config.AppConfig.ClistBaseURL, config.AppConfig.ClistAPIKey)
	lcClient := leetcode.NewClient(config.AppConfig.LeetCodeBaseURL)

	// 4. Initialize Problem Catalog Cache
	catalog := cache.NewCatalogCache(
		func(ctx context.Context) ([]model.Problem, error) {
			raw, err := cfClient.Problemset(ctx)
			if err != nil {
				return nil, err
			}
			return engine.NormalizeProblems(raw), nil
		},
		config.AppConfig.CatalogTTL,
		cache.RDB,
		config.AppConfig.CatalogCacheKey,
	)

	// 5. Initialize Services
	skillCfg := engine.SkillConfig{
		FallbackWindow: config.AppConfig.SkillFallbackWindow,
		Percentile:     config.AppConfig.SkillPercentile,
		RecencyDecay:   config.AppConfig.SkillRecencyDecay,
		DefaultRating:  config.AppConfig.SkillDefaultRating,
		SparseBelow:    config.AppConfig.SkillSparseBelow,
		AdequateUpTo:   config.AppConfig.SkillAdequateUpTo,
	}
	recommendCfg := engine.RecommendConfig{
		BandLow:         config.AppConfig.RecommendBandLow,
		BandHigh:        config.AppConfig.RecommendBandHigh,
		GrowthFactor:    config.AppConfig.RecommendBandGrowth,
		MaxRetries:      config.AppConfig.RecommendBandRetries,
		ClosenessWeight: config.AppConfig.RecommendClosenessWeight,
		AffinityWeight:  config.AppConfig.RecommendAffinityWeight,
		AttemptPenalty:  config.AppConfig.RecommendAttemptPenalty,
		AttemptCap:      config.AppConfig.RecommendAttemptCap,
		DefaultLimit:    config.AppConfig.RecommendLimitDefault,
	}

	profileService := service.NewProfileService(cfClient, catalog, config.AppConfig.FetchSubmissionCount)
	practiceService := service.NewPracticeService(
		cfClient,
		catalog,
		config.AppConfig.FetchSubmissionCount,
		skillCfg,
		recommendCfg,
		config.AppConfig.HistogramBucketWidth,
	)
	contestService := service.NewContestService(clistClient)
	dailyService := service.NewDailyProblemService(lcClient)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(
		config.AppConfig.AuthToken,
		profileService,
		practiceService,
		contestService,
		dailyService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
