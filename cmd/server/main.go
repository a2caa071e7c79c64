package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/adapters/event"
	httpAdapter "github.com/khoahotran/profile-service/adapters/http"
	"github.com/khoahotran/profile-service/adapters/persistence"
	"github.com/khoahotran/profile-service/internal/application/service"
	profileUC "github.com/khoahotran/profile-service/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/profile-service/internal/application/usecase/project"
	"github.com/khoahotran/profile-service/internal/config"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Env:        cfg.App.Env,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	appLogger.Info("Start Profile API Server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg.Tracing.OTLPEndpoint, appLogger, "profile-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(tp, cfg.App.ShutdownTimeout, appLogger)

	// Database
	mongoClient, err := persistence.NewMongoClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect MongoDB", err)
	}
	defer persistence.DisconnectMongo(mongoClient, cfg.App.ShutdownTimeout, appLogger)

	// Repositories
	profileRepo := persistence.NewMongoProfileRepo(mongoClient.Database(cfg.Mongo.Database), appLogger)
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Fatal("cannot create indexes", err)
	}

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		profileRepo = persistence.NewCachedProfileRepo(profileRepo, redisClient, cfg.Redis.CacheTTL, appLogger)
	}

	// Events
	var publisher service.EventPublisher = service.NopEventPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Info("Kafka brokers not set, profile events disabled.")
	}

	// Use Cases
	createProfileUseCase := profileUC.NewCreateProfileUseCase(profileRepo, publisher, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo, appLogger)
	listProfilesUseCase := profileUC.NewListProfilesUseCase(profileRepo, appLogger)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileRepo, publisher, appLogger)
	addProjectUseCase := projectUC.NewAddProjectUseCase(profileRepo, publisher, appLogger)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(profileRepo, appLogger)
	listSkillsUseCase := projectUC.NewListSkillsUseCase(profileRepo, appLogger)
	searchProfilesUseCase := projectUC.NewSearchProfilesUseCase(profileRepo, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(
		createProfileUseCase,
		getProfileUseCase,
		listProfilesUseCase,
		updateProfileUseCase,
		appLogger,
	)
	projectHandler := httpAdapter.NewProjectHandler(
		addProjectUseCase,
		listProjectsUseCase,
		listSkillsUseCase,
		searchProfilesUseCase,
		appLogger,
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(cfg, profileHandler, projectHandler, appLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Cannot run server", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received, draining server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server closed")
}
