package main

import (
	"fmt"
	"os"

	"tracking-service/internal/auth"
	"tracking-service/internal/client"
	"tracking-service/internal/config"
	"tracking-service/internal/db"
	"tracking-service/internal/events"
	httphandler "tracking-service/internal/http"
	"tracking-service/internal/http/middleware"
	"tracking-service/internal/logger"
	"tracking-service/internal/repository"
	"tracking-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	trackerRepo := repository.NewTrackerRepository(database)
	boundaryRepo := repository.NewBoundaryRepository(database)
	violationRepo := repository.NewViolationRepository(database)
	roleRepo := repository.NewRoleRepository(database)

	registryClient := client.NewRegistryClient(cfg)

	publisher := events.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect nats")
		}
	}
	defer publisher.Close()

	roleService := service.NewRoleService(roleRepo)
	evaluator := service.NewEvaluator(boundaryRepo, cfg.Tracking.BoundaryLimit)
	boundaryService := service.NewBoundaryService(boundaryRepo, registryClient, roleService, cfg.Tracking.BoundaryLimit)
	trackingService := service.NewTrackingService(
		registryClient,
		roleService,
		trackerRepo,
		violationRepo,
		evaluator,
		publisher,
		cfg.Tracking.RingCapacity,
		appLogger,
	)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(trackingService, boundaryService, roleService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting tracking service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
