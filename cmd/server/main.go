package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/cache"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/lock"
	"alcyxob/fitness-tracker/internal/logging"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// @title Fitness Tracker API
// @version 1.0
// @description Workout log, streaks and muscle group recommendations.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	fmt.Println("starting fitness tracker ...")

	configPath := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})

	if cfg.JWT.Secret == "" {
		log.Fatalf("jwt secret not set, use JWT_SECRET")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database ---
	dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("connect mongo: %s", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.Infof("connected to mongo database [%s]", cfg.Database.Name)

	indexCtx, indexCancel := context.WithTimeout(ctx, time.Minute)
	if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
		// the unique (user, date) index backs the upsert, do not run without it
		log.Fatalf("ensure indexes: %s", err)
	}
	indexCancel()

	// --- Storage ---
	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("init s3 storage: %s", err)
	}

	// --- Locking and rate limiting ---
	var (
		locker      lock.Locker = lock.NewLocalLocker()
		rateLimiter api.RequestRateLimiter
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("ping redis [%s]: %s", cfg.Redis.Addr, err)
		}
		locker = lock.NewRedisLocker(redisClient, cfg.Redis.LockTTL)
		rateLimiter = redis_rate.NewLimiter(redisClient)
		log.Infof("using redis [%s] for write locks and rate limiting", cfg.Redis.Addr)
	} else {
		log.Warnln("redis disabled: write locks are per process and requests are not rate limited")
	}

	// --- Metrics ---
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("fitness", "server", promRegistry)

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	dayRepo := mongo.NewMongoWorkoutDayRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	exportRepo := mongo.NewMongoExportRepository(appDB)

	// --- Services ---
	recommendationCache := cache.NewUserCache[service.Recommendation]("recommendations", cfg.Cache.SizeMB, cfg.Cache.TTL)

	services := api.Services{
		Auth:      service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Exercises: service.NewExerciseService(exerciseRepo),
		Workouts: service.NewWorkoutService(
			dayRepo, exerciseRepo, locker, recommendationCache, metricsManager, cfg.Server.LockTimeout,
		),
		Progress: service.NewProgressService(
			progressRepo, dayRepo, locker, metricsManager, cfg.Progress.DefaultWeeklyTarget, cfg.Server.LockTimeout,
		),
		Recommendations: service.NewRecommendationService(dayRepo, recommendationCache, metricsManager, service.RecommendationConfig{
			Recovery:     cfg.Progress.RecoveryConfig(),
			Classifier:   cfg.Progress.ClassifierConfig(),
			LookbackDays: cfg.Progress.LookbackDays,
		}),
		Exports: service.NewExportService(dayRepo, exportRepo, fileStorage, storage.DefaultPresignedURLExpiry),
	}

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	api.SetupRoutes(router, api.RouterConfig{
		JWTSecret:          cfg.JWT.Secret,
		Metrics:            metricsManager,
		MetricsHandler:     promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
		RateLimiter:        rateLimiter,
		RateLimitPerMinute: cfg.Redis.RateLimitPerMin,
		DefaultTopN:        cfg.Progress.DefaultTopN,
	}, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	if redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	}
	shutdownErr = multierr.Append(shutdownErr, mongo.DisconnectDB(dbClient))
	if shutdownErr != nil {
		log.Errorf("shutdown: %s", shutdownErr)
		os.Exit(1)
	}
	log.Infoln("server stopped")
}
