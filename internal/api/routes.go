package api

import (
	"ironai/workout-app/internal/metrics"
	"ironai/workout-app/internal/ratelimit"
	"ironai/workout-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services and middleware collaborators the routes
// need. Metrics and MetricsGatherer may be nil.
type Dependencies struct {
	AuthService      service.AuthService
	ExerciseService  service.ExerciseService
	ProgramService   service.ProgramService
	DashboardService service.DashboardService
	HistoryService   service.HistoryService
	GeneratorService service.GeneratorService
	LoginLimiter     ratelimit.Limiter
	Metrics          *metrics.Manager
	MetricsGatherer  prometheus.Gatherer
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService)
	workoutHandler := NewWorkoutHandler(deps.ProgramService)
	generatorHandler := NewGeneratorHandler(deps.GeneratorService)
	dashboardHandler := NewDashboardHandler(deps.DashboardService)
	historyHandler := NewHistoryHandler(deps.HistoryService)

	authMiddleware := AuthMiddleware(deps.AuthService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.MetricsGatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		login := []gin.HandlerFunc{authHandler.Login}
		if deps.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{LoginRateLimitMiddleware(deps.LoginLimiter, deps.Metrics)}, login...)
		}
		authGroup.POST("/login", login...)
	}

	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			uid, ok := requireUserID(c)
			if !ok {
				return
			}
			user, err := deps.AuthService.Profile(c.Request.Context(), uid)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, MapUserToResponse(user))
		})

		protected.GET("/dashboard", dashboardHandler.Get)
		protected.GET("/exercises", exerciseHandler.ListCatalog)

		workouts := protected.Group("/workouts")
		{
			workouts.POST("/generate", generatorHandler.Generate)
			workouts.POST("", workoutHandler.CreateProgram)
			workouts.GET("", workoutHandler.ListPrograms)
			workouts.GET("/day/:dayId", workoutHandler.GetDay)
			workouts.GET("/:id", workoutHandler.GetProgram)
			workouts.PUT("/:id", workoutHandler.UpdateProgram)
			workouts.DELETE("/:id", workoutHandler.DeleteProgram)
			workouts.PUT("/exercises/:id", workoutHandler.UpdateExercise)
			workouts.DELETE("/exercises/:id", workoutHandler.RemoveExercise)
		}

		history := protected.Group("/history")
		{
			history.POST("", historyHandler.RecordSession)
			history.GET("", historyHandler.ListSessions)
		}
	}
}
