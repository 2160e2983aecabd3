package main

import (
	"context" // context package is needed for Redis operations

	"expense_tracker/internal/ai"      // Spending advisor
	"expense_tracker/internal/api"     // API handlers
	"expense_tracker/internal/config"  // Configuration
	"expense_tracker/internal/db"      // Database connection and schema
	"expense_tracker/internal/service" // Business logic
	"expense_tracker/internal/store"   // Persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg.DBDriver, cfg.DSN(), cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client, caching stays off without REDIS_ADDR
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, list caching disabled")
	}

	if cfg.AIAPIKey == "" {
		logrus.Warn("AI_API_KEY not set, analysis requests will fail upstream")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	expenses := service.NewExpenseService(store.NewExpenseStore(gdb), redisClient, cfg.CacheTTL)
	budgets := service.NewBudgetService(store.NewBudgetStore(gdb), redisClient, cfg.CacheTTL)
	generator := ai.NewOpenAIGenerator(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)

	r, err := api.NewRouter(cfg.JWTSecret, api.Services{
		Auth:     service.NewAuthService(store.NewUserStore(gdb), cfg.JWTSecret, cfg.JWTTTL),
		Expenses: expenses,
		Budgets:  budgets,
		Analyzer: ai.NewAnalyzer(expenses, budgets, generator),
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
