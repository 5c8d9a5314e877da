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
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arcn-hotels/service-booking/internal/application"
	"github.com/arcn-hotels/service-booking/internal/config"
	bookingDomain "github.com/arcn-hotels/service-booking/internal/domain/booking"
	"github.com/arcn-hotels/service-booking/internal/events"
	"github.com/arcn-hotels/service-booking/internal/handler"
	"github.com/arcn-hotels/service-booking/internal/logger"
	"github.com/arcn-hotels/service-booking/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.String("availability", cfg.AvailabilityMode),
	)

	// Initialize storage and the availability oracle
	var (
		db          *gorm.DB
		bookingRepo bookingDomain.BookingRepository
		oracle      bookingDomain.RoomAvailabilityOracle
	)
	switch cfg.StorageDriver {
	case "postgres":
		db, err = repository.Connect(cfg.DBConfig.DSN(), log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}

		if cfg.AppEnv == "development" {
			if err := db.AutoMigrate(&repository.BookingModel{}); err != nil {
				log.Fatal("failed to run auto-migration", zap.Error(err))
			}
			log.Info("database migration completed (dev auto-migrate)")
		} else {
			if err := repository.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
				log.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		bookingRepo = repository.NewGormBookingRepository(db)
		if cfg.AvailabilityMode == "storage" {
			oracle = repository.NewGormAvailabilityOracle(db)
		}

	case "memory":
		memRepo := repository.NewMemoryBookingRepository()
		bookingRepo = memRepo
		if cfg.AvailabilityMode == "storage" {
			oracle = repository.NewMemoryAvailabilityOracle(memRepo)
		}
	}
	if oracle == nil {
		oracle = bookingDomain.NewAlwaysAvailableOracle()
	}

	// Initialize Kafka producer
	kafkaProducer := events.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize the lifecycle engine
	bookingService := application.NewBookingService(
		bookingRepo,
		oracle,
		bookingDomain.NewStandardRefundPolicy(),
		kafkaProducer,
		log,
	)

	// Start the payment event consumer driving booking confirmation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "booking-service"
	paymentConsumer := events.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		bookingService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(handler.RecoveryMiddleware(log))
	router.Use(handler.LoggerMiddleware(log))
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.CORSMiddleware())
	router.Use(handler.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-booking")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler := handler.NewBookingHandler(bookingService)
	bookingHandler.RegisterRoutes(&router.RouterGroup)

	adminHandler := handler.NewAdminBookingHandler(bookingService)
	adminHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
