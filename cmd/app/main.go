package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/postgres"
	redisadapter "storefront/internal/adapters/out/redis"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if configs.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if err := order.DefaultTransitions().Validate(); err != nil {
		log.Fatalf("Invalid order transition table: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if configs.SeedDemo {
		if err = postgres.SeedDemo(ctx, gormDB); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		logger.InfoContext(ctx, "Demo data seeded")
	}

	var publisher ports.EventPublisher
	if configs.KafkaHost != "" {
		kafkaPublisher := kafka.NewPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic)
		defer func() {
			_ = kafkaPublisher.Close()
		}()
		publisher = kafkaPublisher
	} else {
		logger.WarnContext(ctx, "KAFKA_HOST is not set, order events stay in the outbox")
	}

	var idempotency ports.IdempotencyStore
	if configs.RedisAddr != "" {
		client, clientErr := redisadapter.NewClient(ctx, configs.RedisAddr)
		if clientErr != nil {
			log.Fatalf("Failed to connect to redis: %v", clientErr)
		}
		defer func() {
			_ = client.Close()
		}()
		idempotency = redisadapter.NewIdempotencyStore(client, redisadapter.DefaultTTL)
	} else {
		logger.WarnContext(ctx, "REDIS_ADDR is not set, Idempotency-Key headers are ignored")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, idempotency)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(ctx, app.CreateHTTPServer(logger), httpin.NewMetrics(), app.CreateRouterConfig())
	if err != nil {
		log.Fatalf("Failed to build HTTP router: %v", err)
	}

	startWebServer(ctx, e, configs, logger)
}

func startWebServer(ctx context.Context, e *echo.Echo, configs cmd.Config, logger *slog.Logger) {
	e.Server.ReadTimeout = configs.RequestTimeout
	e.Server.WriteTimeout = configs.RequestTimeout + 5*time.Second

	go func() {
		logger.InfoContext(ctx, "HTTP server started", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}
}
