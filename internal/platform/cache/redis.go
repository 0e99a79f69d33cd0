package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"cp_assistant/internal/platform/config"
)

var RDB *redis.Client

// ConnectRedis dials the shared catalog store. Redis is optional: with
// no address configured, or an unreachable server, the catalog cache
// runs in-process only and every refresh hits the upstream fetch.
func ConnectRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, catalog cache running without shared store")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("WARN: Could not connect to Redis, continuing without shared store: %v", err)
		client.Close()
		return
	}
	RDB = client
	log.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Println("Redis connection closed.")
	}
}
