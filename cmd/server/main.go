package main

import (
	"context"
	"errors"
	"ironai/workout-app/internal/ai"
	"ironai/workout-app/internal/api"
	"ironai/workout-app/internal/config"
	"ironai/workout-app/internal/logging"
	"ironai/workout-app/internal/metrics"
	"ironai/workout-app/internal/ratelimit"
	"ironai/workout-app/internal/repository"
	"ironai/workout-app/internal/repository/memory"
	"ironai/workout-app/internal/repository/mongo"
	"ironai/workout-app/internal/service"
	"ironai/workout-app/internal/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// @title Iron Workout API
// @version 1.0
// @description API for workout programs, AI generated drafts and training history.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("starting workout server ...")

	// --- Storage ---
	var repos repository.Repositories
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warnln("using in-memory storage, data is lost on restart")
		repos = memory.NewRepositories()
	default:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("disconnecting MongoDB ...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Errorf("failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(ctx, appDB)
			log.Println("index creation completed")
		}()
		repos = mongo.NewRepositories(appDB)
	}

	// --- Metrics ---
	var (
		metricsManager *metrics.Manager
		gatherer       prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metricsManager = metrics.NewManager("iron", "workout", registry)
		gatherer = registry
	}

	// --- Login limiter ---
	policy := ratelimit.Policy{Attempts: cfg.LoginLimit.Attempts, Window: cfg.LoginLimit.Window}
	var loginLimiter ratelimit.Limiter
	switch cfg.LoginLimit.Backend {
	case config.LimiterRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("failed to close redis client: %v", err)
			}
		}()
		loginLimiter = ratelimit.NewRedisLimiter(rdb, policy, "login:")
	default:
		memLimiter := ratelimit.NewMemoryLimiter(policy, cfg.LoginLimit.Window)
		defer memLimiter.Stop()
		loginLimiter = memLimiter
	}

	// --- AI ---
	var completer ai.Completer
	if cfg.AI.APIKey != "" {
		gemini, err := ai.NewGeminiCompleter(context.Background(), cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			log.Fatalf("failed to create gemini client: %v", err)
		}
		defer func() {
			if err := gemini.Close(); err != nil {
				log.Errorf("failed to close gemini client: %v", err)
			}
		}()
		completer = gemini
	} else {
		log.Warnln("ai.api_key is empty, program generation is disabled")
		completer = ai.NewUnconfiguredCompleter()
	}

	archive, err := storage.NewS3Archive(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalf("failed to initialize draft archive: %v", err)
	}

	// --- Services ---
	authService := service.NewAuthService(repos.Users, cfg.JWT.Secret, cfg.JWT.Expiration)
	generatorService := service.NewGeneratorService(repos.Programs, completer, archive, metricsManager, service.GeneratorConfig{
		DailyQuota: cfg.AI.DailyQuota,
		Timeout:    cfg.AI.Timeout,
	})

	// --- Router ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(
		api.RecoveryMiddleware(metricsManager),
		api.RequestLoggerMiddleware(metricsManager),
		api.CORSMiddleware(cfg.Server.AllowedOrigins),
	)
	api.SetupRoutes(router, api.Dependencies{
		AuthService:      authService,
		ExerciseService:  service.NewExerciseService(repos.Exercises),
		ProgramService:   service.NewProgramService(repos),
		DashboardService: service.NewDashboardService(repos),
		HistoryService:   service.NewHistoryService(repos, metricsManager),
		GeneratorService: generatorService,
		LoginLimiter:     loginLimiter,
		Metrics:          metricsManager,
		MetricsGatherer:  gatherer,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSig := <-quit
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Println("server exiting")
}
