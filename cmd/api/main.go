package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mateoquintana/brandforge-backend/api/middleware"
	"github.com/mateoquintana/brandforge-backend/api/routes"
	"github.com/mateoquintana/brandforge-backend/internal/auth"
	"github.com/mateoquintana/brandforge-backend/internal/designs"
	"github.com/mateoquintana/brandforge-backend/internal/generation"
	"github.com/mateoquintana/brandforge-backend/internal/media"
	"github.com/mateoquintana/brandforge-backend/internal/projects"
	"github.com/mateoquintana/brandforge-backend/internal/training"
	"github.com/mateoquintana/brandforge-backend/internal/users"
	"github.com/mateoquintana/brandforge-backend/pkg/config"
	"github.com/mateoquintana/brandforge-backend/pkg/db"
	"github.com/mateoquintana/brandforge-backend/pkg/logger"
	"github.com/mateoquintana/brandforge-backend/pkg/metrics"
	"github.com/mateoquintana/brandforge-backend/pkg/migrate"
	"github.com/mateoquintana/brandforge-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	mediaStore := media.NewStore(cfg.Uploads)
	if err := mediaStore.EnsureLayout(); err != nil {
		logg.Error(context.Background(), "failed to create upload directories", err)
		os.Exit(1)
	}

	// Redis is optional; without it rate limiting falls back to an
	// in-process counter.
	var rateLimiter middleware.CounterStore
	if cfg.Redis.Configured() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		rateLimiter = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, using in-memory rate limiting")
		rateLimiter = middleware.NewMemoryCounterStore()
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	generationMetrics := metrics.NewGenerationMetrics(prometheus.DefaultRegisterer)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	projectsService, err := projects.NewService(projects.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create projects service", err)
		os.Exit(1)
	}

	generationService := generation.NewService(generation.ServiceParams{
		Providers: cfg.Providers,
		Logger:    logg,
		Metrics:   generationMetrics,
	})

	designsService, err := designs.NewService(designs.ServiceParams{
		Repo:      designs.NewRepository(dbClient.DB()),
		Projects:  projectsService,
		Generator: generationService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create designs service", err)
		os.Exit(1)
	}

	trainingService, err := training.NewService(training.ServiceParams{
		Repo:  training.NewRepository(dbClient.DB()),
		Store: mediaStore,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create training service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"database": dbClient.Backend(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:            cfg,
			Logger:            logg,
			DBBackend:         dbClient.Backend(),
			RateLimiter:       rateLimiter,
			HTTPMetrics:       httpMetrics,
			AuthService:       authService,
			ProjectsService:   projectsService,
			DesignsService:    designsService,
			GenerationService: generationService,
			TrainingService:   trainingService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
