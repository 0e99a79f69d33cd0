package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort   string
	AuthToken string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CodeforcesBaseURL string
	ClistBaseURL      string
	ClistAPIKey       string
	LeetCodeBaseURL   string

	CatalogTTL      time.Duration
	CatalogCacheKey string

	FetchSubmissionCount int

	HistogramBucketWidth int

	SkillFallbackWindow int
	SkillPercentile     float64
	SkillRecencyDecay   float64
	SkillDefaultRating  int
	SkillSparseBelow    int
	SkillAdequateUpTo   int

	RecommendBandLow         int
	RecommendBandHigh        int
	RecommendBandGrowth      float64
	RecommendBandRetries     int
	RecommendClosenessWeight float64
	RecommendAffinityWeight  float64
	RecommendAttemptPenalty  float64
	RecommendAttemptCap      int
	RecommendLimitDefault    int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:   getEnv("API_PORT", "8080"),
		AuthToken: getEnv("AUTH_TOKEN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CodeforcesBaseURL: getEnv("CODEFORCES_BASE_URL", "https://codeforces.com/api"),
		ClistBaseURL:      getEnv("CLIST_BASE_URL", "https://clist.by/api/v4/contest/"),
		ClistAPIKey:       getEnv("CLIST_API_KEY", ""),
		LeetCodeBaseURL:   getEnv("LEETCODE_BASE_URL", "https://leetcode.com/graphql"),

		CatalogTTL:      time.Duration(getEnvAsInt("CATALOG_TTL_MINUTES", 60)) * time.Minute,
		CatalogCacheKey: getEnv("CATALOG_CACHE_KEY", "cp_assistant:problem_catalog"),

		FetchSubmissionCount: getEnvAsInt("FETCH_SUBMISSION_COUNT", 5000),

		HistogramBucketWidth: getEnvAsInt("HISTOGRAM_BUCKET_WIDTH", 100),

		SkillFallbackWindow: getEnvAsInt("SKILL_FALLBACK_WINDOW", 50),
		SkillPercentile:     getEnvAsFloat("SKILL_PERCENTILE", 0.75),
		SkillRecencyDecay:   getEnvAsFloat("SKILL_RECENCY_DECAY", 0.95),
		SkillDefaultRating:  getEnvAsInt("SKILL_DEFAULT_RATING", 1200),
		SkillSparseBelow:    getEnvAsInt("SKILL_SPARSE_BELOW", 5),
		SkillAdequateUpTo:   getEnvAsInt("SKILL_ADEQUATE_UP_TO", 20),

		RecommendBandLow:         getEnvAsInt("RECOMMEND_BAND_LOW", 100),
		RecommendBandHigh:        getEnvAsInt("RECOMMEND_BAND_HIGH", 300),
		RecommendBandGrowth:      getEnvAsFloat("RECOMMEND_BAND_GROWTH", 1.5),
		RecommendBandRetries:     getEnvAsInt("RECOMMEND_BAND_RETRIES", 3),
		RecommendClosenessWeight: getEnvAsFloat("RECOMMEND_CLOSENESS_WEIGHT", 0.6),
		RecommendAffinityWeight:  getEnvAsFloat("RECOMMEND_AFFINITY_WEIGHT", 0.3),
		RecommendAttemptPenalty:  getEnvAsFloat("RECOMMEND_ATTEMPT_PENALTY", 0.1),
		RecommendAttemptCap:      getEnvAsInt("RECOMMEND_ATTEMPT_CAP", 5),
		RecommendLimitDefault:    getEnvAsInt("RECOMMEND_LIMIT_DEFAULT", 10),
	}

	if AppConfig.AuthToken == "" {
		log.Println("WARN: AUTH_TOKEN not set, API authentication disabled")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}
