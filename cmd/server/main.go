package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/consumer-favorites/internal/config"
	consumerDelivery "github.com/tair/consumer-favorites/internal/consumer/delivery/http"
	consumerdomain "github.com/tair/consumer-favorites/internal/consumer/domain"
	consumerRepository "github.com/tair/consumer-favorites/internal/consumer/repository"
	"github.com/tair/consumer-favorites/internal/middleware"
	productDelivery "github.com/tair/consumer-favorites/internal/product/delivery/http"
	"github.com/tair/consumer-favorites/internal/product/gateway"
	userDelivery "github.com/tair/consumer-favorites/internal/user/delivery/http"
	userRepository "github.com/tair/consumer-favorites/internal/user/repository"
	"github.com/tair/consumer-favorites/kafka"
	"github.com/tair/consumer-favorites/pkg/auth"
	"github.com/tair/consumer-favorites/pkg/database"
	"github.com/tair/consumer-favorites/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("consumer-favorites", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("consumer-favorites", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	// Connect to database with GORM
	db, err := database.NewGormConnection(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories and run migrations
	userRepo := userRepository.NewGormUserRepository(db)
	if err := userRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run user migrations")
	}

	consumerRepo := consumerRepository.NewGormConsumerRepository(db)
	if err := consumerRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run consumer migrations")
	}
	favoriteRepo := consumerRepository.NewGormFavoriteRepository(db)

	// Credential service and catalog gateway
	credentials := auth.NewService(cfg.JWTSecret, cfg.TokenLifetime)
	catalog := gateway.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)

	// Optional Kafka event publishing
	var events consumerdomain.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer publisher.Close()
		events = publisher
	}

	// HTTP handlers
	authHandler := userDelivery.NewAuthHandler(userRepo, credentials)
	consumerHandler := consumerDelivery.NewConsumerHandler(consumerRepo, favoriteRepo, catalog, events)
	productHandler := productDelivery.NewProductHandler(catalog)

	// Router: auth routes are public, consumer and product routes require a
	// valid bearer token
	router := mux.NewRouter()
	authmw := middleware.Auth(credentials)
	authHandler.RegisterRoutes(router)
	authHandler.RegisterHealthCheck(router, sqlDB)
	consumerHandler.RegisterRoutes(router, authmw)
	productHandler.RegisterRoutes(router, authmw)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
