package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mello-felipe/travel-map-social-app/pkg/logger"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/config"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/handler"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/infrastructure"
	spothttp "github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/infrastructure/http"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/infrastructure/messaging"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/repository"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("posts-gateway", logLevel)

	spotClient := spothttp.NewSpotClient(cfg.SpotAPI.BaseURL, cfg.SpotAPI.Timeout)
	if cfg.SpotAPI.Token != "" {
		spotClient.SetAuthToken(cfg.SpotAPI.Token)
	}
	logger.Info().Str("base_url", cfg.SpotAPI.BaseURL).Msg("Configured spot API client")

	// The event stream is optional; without brokers the gateway simply
	// does not publish POST_CREATED events.
	var publisher infrastructure.MessagePublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")
	} else {
		logger.Warn().Msg("No Kafka brokers configured, post events disabled")
	}

	// Redis backs the idempotency middleware; without it replays are not
	// caught and clients must not blind-retry community posts.
	var idempotency gin.HandlerFunc
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Msg("Redis unreachable at startup, idempotency will fail open")
		}
		pingCancel()

		idempotencyRepo := repository.NewRedisIdempotencyRepository(redisClient)
		idempotency = handler.IdempotencyMiddleware(idempotencyRepo, cfg.Redis.IdempotencyTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Initialized idempotency store")
	} else {
		logger.Warn().Msg("No Redis configured, idempotency middleware disabled")
	}

	postService := service.NewPostService(spotClient, publisher)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	postHandler := handler.NewPostHandler(postService)
	router := handler.SetupRoutes(postHandler, authMiddleware, idempotency)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Posts Gateway")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Posts Gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Posts Gateway stopped gracefully")
}
