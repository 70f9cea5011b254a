package api

import (
	"net/http"

	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -destination=service_mocks_test.go -package=api alcyxob/fitness-tracker/internal/service AuthService,ExerciseService,WorkoutService,ProgressService,RecommendationService,ExportService

// Services bundles everything the handlers call.
type Services struct {
	Auth            service.AuthService
	Exercises       service.ExerciseService
	Workouts        service.WorkoutService
	Progress        service.ProgressService
	Recommendations service.RecommendationService
	Exports         service.ExportService
}

type RouterConfig struct {
	JWTSecret string
	Metrics   *metrics.Manager
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// RateLimiter guards the write routes when set.
	RateLimiter        RequestRateLimiter
	RateLimitPerMinute int
	DefaultTopN        int
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig, services Services) {
	router.Use(PanicRecovery(cfg.Metrics), RequestLogger(), RequestMetrics(cfg.Metrics))

	authHandler := NewAuthHandler(services.Auth)
	exerciseHandler := NewExerciseHandler(services.Exercises)
	workoutHandler := NewWorkoutHandler(services.Workouts, services.Progress)
	progressHandler := NewProgressHandler(services.Progress, services.Recommendations, cfg.DefaultTopN)
	exportHandler := NewExportHandler(services.Exports)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(cfg.JWTSecret))

	// writes share one per-user budget
	writes := []gin.HandlerFunc{}
	if cfg.RateLimiter != nil && cfg.RateLimitPerMinute > 0 {
		writes = append(writes, RateLimit(cfg.RateLimiter, cfg.Metrics, cfg.RateLimitPerMinute))
	}
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), h)
	}

	{
		protected.GET("/me", authHandler.Me)

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", write(exerciseHandler.CreateExercise)...)
		}

		workoutGroup := protected.Group("/workouts/:date")
		{
			workoutGroup.GET("", workoutHandler.GetDay)
			workoutGroup.PATCH("", write(workoutHandler.UpdateDay)...)
			workoutGroup.PUT("/exercises/:exerciseId", write(workoutHandler.SaveExerciseSets)...)
			workoutGroup.DELETE("/exercises/:exerciseId", write(workoutHandler.DeleteExercise)...)
			workoutGroup.POST("/complete", write(workoutHandler.CompleteWorkout)...)
		}

		protected.GET("/progress", progressHandler.GetProgress)
		protected.PUT("/progress/weekly-target", write(progressHandler.SetWeeklyTarget)...)
		protected.GET("/recommendations", progressHandler.GetRecommendations)

		exportGroup := protected.Group("/exports")
		{
			exportGroup.POST("", write(exportHandler.CreateExport)...)
			exportGroup.GET("/:exportId/download", exportHandler.GetDownloadURL)
		}
	}
}
