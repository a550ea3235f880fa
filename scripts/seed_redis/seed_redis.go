package main

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"predictive-guardian/internal/config"
)

const authPrefix = "guardian:auth:"

// Dashboard clients and the key each one sends as X-API-Key. Seeded keys never expire.
var apiKeys = map[string]string{
	"ops_dashboard_key":   "ops-dashboard",
	"maintenance_app_key": "maintenance-app",
	"fleet_console_key":   "fleet-console",
	"test_key":            "test-client",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using system environment variables")
	}
	cfg := config.Load()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()

	ctx := context.Background()

	fmt.Println("Connecting to Redis...")
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Connection failed: %v\n\nMake sure Redis is running:\n  docker-compose up -d redis", err)
	}
	fmt.Println("✓ Connected")

	seedKeys(ctx, client)
	verify(ctx, client)

	fmt.Println("\n✅ Redis seeded successfully")
}

func seedKeys(ctx context.Context, client *redis.Client) {
	fmt.Println("\n── Seeding API keys ───────────────────────────")

	keys := make([]string, 0, len(apiKeys))
	for k := range apiKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pipe := client.Pipeline()
	for _, k := range keys {
		pipe.Set(ctx, authPrefix+k, apiKeys[k], 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Fatalf("Failed to seed API keys: %v", err)
	}
	for _, k := range keys {
		fmt.Printf("  ✓ %-40s → %s\n", authPrefix+k, apiKeys[k])
	}
}

func verify(ctx context.Context, client *redis.Client) {
	fmt.Println("\n── Verification ───────────────────────────────")

	var found int
	iter := client.Scan(ctx, 0, authPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		found++
	}
	if err := iter.Err(); err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	fmt.Printf("  ✓ %d API keys found in Redis\n", found)

	val, err := client.Get(ctx, authPrefix+"test_key").Result()
	if err != nil {
		log.Fatalf("Spot check failed: %v", err)
	}
	fmt.Printf("  ✓ spot check: %stest_key → %s\n", authPrefix, val)
}
