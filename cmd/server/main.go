// Package main is the entry point for the fee estimator.
// It loads the rate table, wires the optional PostgreSQL and Redis
// collaborators and starts the HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"feecalc/internal/config"
	"feecalc/internal/handlers"
	"feecalc/internal/repositories"
	"feecalc/internal/repositories/cache"
	"feecalc/internal/routes"
	"feecalc/internal/services/analytics"
	"feecalc/internal/services/estimate"
	"feecalc/internal/services/fee"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	config.LoadEnv()

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	table, err := config.LoadRateTable()
	if err != nil {
		log.Fatalf("Failed to load rate table: %v", err)
	}
	engine, err := fee.NewEngine(table)
	if err != nil {
		log.Fatalf("Invalid rate table: %v", err)
	}
	log.Printf("Loaded rate table %s", table.Version)

	checks := map[string]handlers.Check{}
	sinks := analytics.Multi{analytics.NewLogSink()}

	var repo repositories.CalculationRepository
	if config.GetBoolEnv("PERSISTENCE_ENABLED", false) {
		db, err := repositories.InitDB()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer repositories.CloseDB(db)

		repo = repositories.NewCalculationRepository(db)
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	var reportCache estimate.ReportCache
	if config.GetBoolEnv("REDIS_ENABLED", false) {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		defer closeRedis(client)

		if err := cache.Ping(context.Background(), client); err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
		} else {
			log.Println("Connected to Redis")
		}

		reportCache = cache.NewCacheService(client, config.GetDurationEnv("REPORT_CACHE_TTL", time.Hour))
		sinks = append(sinks, repositories.NewRedisEventSink(
			client,
			config.GetEnv("EVENT_STREAM", repositories.DefaultEventStream),
			int64(config.GetIntEnv("EVENT_STREAM_MAXLEN", 10000)),
		))
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}

	registry := prometheus.NewRegistry()
	metrics, err := estimate.NewPrometheusMetricsCollector("feecalc", registry)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	estimateService := estimate.NewService(
		engine,
		repo,
		sinks,
		reportCache,
		estimate.Config{
			DefaultHistoryLimit: config.GetIntEnv("HISTORY_DEFAULT_LIMIT", estimate.DefaultHistoryLimit),
			CollaboratorTimeout: config.GetDurationEnv("COLLABORATOR_TIMEOUT", estimate.DefaultCollaboratorTimeout),
		},
		metrics,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/estimates", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("ESTIMATE_RATE_LIMIT", 60),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, estimateService, handlers.NewHealthHandler(table.Version, checks))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Printf("Failed to close Redis connection: %v", err)
	}
}
