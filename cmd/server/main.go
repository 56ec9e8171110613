package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/auth"
	"github.com/baxirbajja/CMCEspace-api/internal/config"
	"github.com/baxirbajja/CMCEspace-api/internal/database"
	reservationDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/baxirbajja/CMCEspace-api/internal/handler"
	"github.com/baxirbajja/CMCEspace-api/internal/logger"
	"github.com/baxirbajja/CMCEspace-api/internal/middleware"
	"github.com/baxirbajja/CMCEspace-api/internal/notify"
	"github.com/baxirbajja/CMCEspace-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "cmcespace-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting cmcespace-api",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(
		&repository.SpaceModel{},
		&repository.ReservationModel{},
		&repository.UserModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Connect to Redis (token blocklist)
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	// Initialize auth collaborators
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	tokenStore := auth.NewTokenStore(redisClient)

	// Initialize notifier
	var notifier notify.Notifier = notify.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier := notify.NewKafkaNotifier(cfg.KafkaBrokers, log)
		defer func() { _ = kafkaNotifier.Close() }()
		notifier = kafkaNotifier
	}

	// Initialize repositories
	spaceRepo := repository.NewGormSpaceRepository(db)
	reservationRepo := repository.NewGormReservationRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	// Initialize the admission rule
	admission := reservationDomain.NewAdmissionRule(spaceRepo, reservationRepo)

	// Initialize application services
	spaceService := application.NewSpaceService(spaceRepo, reservationRepo, log)
	reservationService := application.NewReservationService(reservationRepo, spaceRepo, admission, notifier, log)
	reportService := application.NewReportService(reservationRepo, spaceRepo, log)
	authService := application.NewAuthService(userRepo, jwtManager, tokenStore, log)

	// Bootstrap administrator
	if cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal("failed to ensure bootstrap administrator", zap.Error(err))
		}
	}

	// Initialize HTTP handlers
	spaceHandler := handler.NewSpaceHandler(spaceService, log)
	reservationHandler := handler.NewReservationHandler(reservationService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	authHandler := handler.NewAuthHandler(authService, log)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())
	router.Use(middleware.BodyLimit())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register routes
	protect := middleware.Protect(jwtManager, tokenStore, log)
	requireAdmin := middleware.RequireAdmin(log)

	api := router.Group("/api")
	spaceHandler.RegisterRoutes(api, protect, requireAdmin)
	reservationHandler.RegisterRoutes(api, protect, requireAdmin)
	reportHandler.RegisterRoutes(api, protect, requireAdmin)
	authHandler.RegisterRoutes(api, protect, requireAdmin)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down cmcespace-api...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("cmcespace-api stopped")
}
